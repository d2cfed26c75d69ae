package abi

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

var (
	// ErrEmptyAbiFilterSet indicates that a variant was declared without any ABI filter.
	ErrEmptyAbiFilterSet = errors.New("empty filters passed")

	// ErrUnsupportedAbiFilter indicates that a variant was declared with an ABI outside of SupportedAbis.
	ErrUnsupportedAbiFilter = errors.New("unsupported abi filter")
)

const (
	// MinSdkVersion is the lowest Android API level the application supports.
	MinSdkVersion = 16

	// MinSdkVersion64 is the lowest Android API level that ships 64-bit ABIs.
	MinSdkVersion64 = 21
)

// Supported ABI names.
const (
	ArmeabiV7a = "armeabi-v7a"
	Arm64V8a   = "arm64-v8a"
	AbiX86     = "x86"
	AbiX86_64  = "x86_64"
)

// SupportedAbis lists every ABI the native libraries are built for.
var SupportedAbis = []string{ArmeabiV7a, Arm64V8a, AbiX86, AbiX86_64}

// Variant describes a product flavor of the application restricted to a set of ABIs.
type Variant struct {
	// Flavor is the product flavor name.
	Flavor string `json:"flavor"`

	// Filters lists the ABIs packaged into the flavor.
	Filters []string `json:"filters"`

	// DisplayName is the user-facing architecture name. Defaults to the first filter.
	DisplayName string `json:"displayName"`

	// SideLoadOnly indicates that the flavor is not published to the store.
	SideLoadOnly bool `json:"sideLoadOnly"`
}

// VariantOption customizes a Variant created by NewVariant.
type VariantOption func(*Variant)

// WithDisplayName overrides the display name of a variant.
func WithDisplayName(name string) VariantOption {
	return func(v *Variant) {
		v.DisplayName = name
	}
}

// SideLoadOnly marks a variant as not published to the store.
func SideLoadOnly() VariantOption {
	return func(v *Variant) {
		v.SideLoadOnly = true
	}
}

// NewVariant creates a Variant for the given flavor and ABI filters. Returns ErrEmptyAbiFilterSet if no filter is
// provided, or ErrUnsupportedAbiFilter if a filter is not in SupportedAbis.
func NewVariant(flavor string, filters []string, opts ...VariantOption) (*Variant, error) {
	if len(filters) == 0 {
		return nil, errors.Wrapf(ErrEmptyAbiFilterSet, "variant %s", flavor)
	}
	for _, filter := range filters {
		if !slices.Contains(SupportedAbis, filter) {
			return nil, errors.Wrapf(ErrUnsupportedAbiFilter, "variant %s: %s", flavor, filter)
		}
	}

	v := &Variant{
		Flavor:      flavor,
		Filters:     slices.Clone(filters),
		DisplayName: filters[0],
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// MinSdkVersion returns the lowest API level the variant can be installed on. Variants that only carry 64-bit ABIs
// require MinSdkVersion64.
func (v *Variant) MinSdkVersion() int {
	for _, filter := range v.Filters {
		if filter != Arm64V8a && filter != AbiX86_64 {
			return MinSdkVersion
		}
	}
	return max(MinSdkVersion64, MinSdkVersion)
}

// Variant table indices.
const (
	Universal = iota
	Armeabi
	Arm64
	X86
	X64
)

// variants describes the fixed flavor table, indexed by the constants above.
var variants = mustVariants(
	variantSpec{"universal", SupportedAbis, []VariantOption{WithDisplayName("universal"), SideLoadOnly()}},
	variantSpec{"arm32", []string{ArmeabiV7a}, nil},
	variantSpec{"arm64", []string{Arm64V8a}, nil},
	variantSpec{"x86", []string{AbiX86}, nil},
	variantSpec{"x64", []string{AbiX86_64}, []VariantOption{WithDisplayName("x64")}},
)

type variantSpec struct {
	flavor  string
	filters []string
	opts    []VariantOption
}

func mustVariants(specs ...variantSpec) []Variant {
	result := make([]Variant, 0, len(specs))
	for _, spec := range specs {
		v, err := NewVariant(spec.flavor, spec.filters, spec.opts...)
		if err != nil {
			panic(err)
		}
		result = append(result, *v)
	}
	return result
}

// Variants returns a copy of the variant table in index order.
func Variants() []Variant {
	result := make([]Variant, len(variants))
	for i, v := range variants {
		v.Filters = slices.Clone(v.Filters)
		result[i] = v
	}
	return result
}

// Lookup returns the variant at the given table index.
func Lookup(index int) (Variant, bool) {
	if index < 0 || index >= len(variants) {
		return Variant{}, false
	}
	v := variants[index]
	v.Filters = slices.Clone(v.Filters)
	return v, true
}
