package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Dimension is one filter axis of the listing page.
type Dimension int

const (
	Capability Dimension = iota
	Community
	DeliveryFramework
	Phase
)

// Dimensions lists every axis in display order.
var Dimensions = []Dimension{Capability, Community, DeliveryFramework, Phase}

var ErrUnknownDimension = errors.New("catalog: unknown filter dimension")

var dimensionKeys = map[Dimension]string{
	Capability:        "capability",
	Community:         "community",
	DeliveryFramework: "deliveryFramework",
	Phase:             "phase",
}

var dimensionLabels = map[Dimension]string{
	Capability:        "Capability",
	Community:         "Community",
	DeliveryFramework: "Delivery framework",
	Phase:             "Phase",
}

// String returns the wire key, e.g. deliveryFramework.
func (d Dimension) String() string {
	if key, ok := dimensionKeys[d]; ok {
		return key
	}
	return fmt.Sprintf("Dimension(%d)", int(d))
}

// Label returns the human readable heading.
func (d Dimension) Label() string {
	return dimensionLabels[d]
}

// ParseDimension maps a wire key to a Dimension. Matching ignores case.
func ParseDimension(key string) (Dimension, error) {
	trimmed := strings.TrimSpace(key)
	for _, d := range Dimensions {
		if strings.EqualFold(dimensionKeys[d], trimmed) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDimension, key)
}

var defaultOptions = map[Dimension][]string{
	Capability: {
		"Digital Strategy & Experience",
		"Architecture, Engineering & DevOps",
		"Digital Trust & Cyber Security",
		"Data Science",
	},
	Community: {
		"Product and Strategy",
		"Delivery & Transformation",
		"Digital Design",
		"Cyber Risk Management",
		"Security Architecture",
		"Operational Technology (OT) & Internet of Things (IoT)",
		"Operational Resilience",
		"Data Analytics",
		"Machine Learning",
		"Cloud Infrastructure",
		"DevOps Engineering",
		"Quality Assurance",
		"Business Analysis",
		"Project Management",
		"Change Management",
		"Service Design",
		"Content Strategy",
		"Technical Writing",
		"Information Architecture",
		"User Experience Design",
	},
	DeliveryFramework: {"Public sector", "Private sector"},
	Phase:             {"Set-up", "Discovery", "Alpha", "Private beta", "Public beta", "Live"},
}

// Options returns the fixed option list shown for a dimension.
func Options(d Dimension) []string {
	return append([]string(nil), defaultOptions[d]...)
}
