package query

import (
	"fmt"
	"strings"
)

// option is one member of a closed choice set. name is the canonical
// spelling used by flags and the recent file, label is the wording of the
// desktop form (accepted when parsing), code is what the value contributes
// to the query or URL ("" for none).
type option struct {
	name  string
	label string
	code  string
}

// options is indexed by the enum value. Index 0 is always the default.
type options []option

func (o options) name(i uint8) string {
	if int(i) < len(o) {
		return o[i].name
	}

	return fmt.Sprintf("invalid(%d)", i)
}

func (o options) code(i uint8) string {
	if int(i) < len(o) {
		return o[i].code
	}

	return ""
}

// parse matches s against names and labels, case-insensitively.
// An empty string selects the default.
func (o options) parse(kind, s string, dst *uint8) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*dst = 0
		return nil
	}

	for i, opt := range o {
		if strings.EqualFold(s, opt.name) || (opt.label != "" && strings.EqualFold(s, opt.label)) {
			*dst = uint8(i)
			return nil
		}
	}

	return fmt.Errorf("%w: %s %q (want one of %s)", ErrUnknownValue, kind, s, strings.Join(o.names(), "|"))
}

func (o options) names() []string {
	out := make([]string, len(o))
	for i, opt := range o {
		out[i] = opt.name
	}

	return out
}

// Choices returns the accepted names for a choice kind ("where", "type",
// "size", ...), or nil if the kind is unknown.
func Choices(kind string) []string {
	o, ok := choiceKinds[kind]
	if !ok {
		return nil
	}

	return o.names()
}

var choiceKinds = map[string]options{
	"where":          locations,
	"type":           searchTypes,
	"size":           imageSizes,
	"aspect":         aspects,
	"color":          colors,
	"specific-color": specificColors,
	"image-type":     imageTypes,
	"region":         regions,
	"rights":         usageRights,
	"past":           presets,
}

// Location selects where AllWords must appear.
type Location uint8

const (
	Anywhere Location = iota
	InTitle
	InText
	InURL
	InLinks
)

var locations = options{
	{"anywhere", "anywhere in the page", ""},
	{"title", "in the title of the page", "intitle:"},
	{"text", "in the text of the page", "intext:"},
	{"url", "in the URL of the page", "inurl:"},
	{"links", "in links to the page", "inanchor:"},
}

func (l Location) String() string                { return locations.name(uint8(l)) }
func (l Location) MarshalText() ([]byte, error)  { return []byte(l.String()), nil }
func (l *Location) UnmarshalText(b []byte) error { return locations.parse("where", string(b), (*uint8)(l)) }
func (l *Location) Set(s string) error           { return l.UnmarshalText([]byte(s)) }
func (Location) Type() string                    { return "where" }

// ParseLocation parses a location name such as "title".
func ParseLocation(s string) (Location, error) {
	var l Location
	err := l.Set(s)

	return l, err
}

// SearchType selects Google's result vertical.
type SearchType uint8

const (
	Web SearchType = iota
	Images
	Videos
	News
)

var searchTypes = options{
	{"web", "Web", ""},
	{"images", "Images", "isch"},
	{"videos", "Videos", "vid"},
	{"news", "News", "nws"},
}

func (t SearchType) String() string                { return searchTypes.name(uint8(t)) }
func (t SearchType) MarshalText() ([]byte, error)  { return []byte(t.String()), nil }
func (t *SearchType) UnmarshalText(b []byte) error { return searchTypes.parse("type", string(b), (*uint8)(t)) }
func (t *SearchType) Set(s string) error           { return t.UnmarshalText([]byte(s)) }
func (SearchType) Type() string                    { return "type" }

// ParseSearchType parses "web", "images", "videos" or "news".
func ParseSearchType(s string) (SearchType, error) {
	var t SearchType
	err := t.Set(s)

	return t, err
}

// ImageSize filters image results by size.
type ImageSize uint8

const (
	SizeAny ImageSize = iota
	SizeLarge
	SizeMedium
	SizeIcon
)

var imageSizes = options{
	{"any", "Any size", ""},
	{"large", "Large", "isz:l"},
	{"medium", "Medium", "isz:m"},
	{"icon", "Icon", "isz:i"},
}

func (s ImageSize) String() string                { return imageSizes.name(uint8(s)) }
func (s ImageSize) MarshalText() ([]byte, error)  { return []byte(s.String()), nil }
func (s *ImageSize) UnmarshalText(b []byte) error { return imageSizes.parse("size", string(b), (*uint8)(s)) }
func (s *ImageSize) Set(v string) error           { return s.UnmarshalText([]byte(v)) }
func (ImageSize) Type() string                    { return "size" }

// AspectRatio filters image results by shape.
type AspectRatio uint8

const (
	AspectAny AspectRatio = iota
	AspectSquare
	AspectTall
	AspectWide
	AspectPanoramic
)

var aspects = options{
	{"any", "Any aspect ratio", ""},
	{"square", "Square", "iar:s"},
	{"tall", "Tall", "iar:t"},
	{"wide", "Wide", "iar:w"},
	{"panoramic", "Panoramic", "iar:xw"},
}

func (a AspectRatio) String() string                { return aspects.name(uint8(a)) }
func (a AspectRatio) MarshalText() ([]byte, error)  { return []byte(a.String()), nil }
func (a *AspectRatio) UnmarshalText(b []byte) error { return aspects.parse("aspect", string(b), (*uint8)(a)) }
func (a *AspectRatio) Set(v string) error           { return a.UnmarshalText([]byte(v)) }
func (AspectRatio) Type() string                    { return "aspect" }

// Color filters image results by colour. ColorSpecific defers to
// ImageFilters.SpecificColor.
type Color uint8

const (
	ColorAny Color = iota
	ColorFull
	ColorGray
	ColorTransparent
	ColorSpecific
)

var colors = options{
	{"any", "Any color", ""},
	{"full", "Full color", "ic:color"},
	{"gray", "Black and white", "ic:gray"},
	{"transparent", "Transparent", "ic:trans"},
	{"specific", "Specific color", ""},
}

func (c Color) String() string                { return colors.name(uint8(c)) }
func (c Color) MarshalText() ([]byte, error)  { return []byte(c.String()), nil }
func (c *Color) UnmarshalText(b []byte) error { return colors.parse("color", string(b), (*uint8)(c)) }
func (c *Color) Set(v string) error           { return c.UnmarshalText([]byte(v)) }
func (Color) Type() string                    { return "color" }

// SpecificColor is the dominant colour used with ColorSpecific.
type SpecificColor uint8

const (
	NoColor SpecificColor = iota
	Black
	Blue
	Brown
	Gray
	Green
	Orange
	Pink
	Purple
	Red
	Teal
	White
	Yellow
)

var specificColors = options{
	{"none", "", ""},
	{"black", "Black", "isc:black"},
	{"blue", "Blue", "isc:blue"},
	{"brown", "Brown", "isc:brown"},
	{"gray", "Gray", "isc:gray"},
	{"green", "Green", "isc:green"},
	{"orange", "Orange", "isc:orange"},
	{"pink", "Pink", "isc:pink"},
	{"purple", "Purple", "isc:purple"},
	{"red", "Red", "isc:red"},
	{"teal", "Teal", "isc:teal"},
	{"white", "White", "isc:white"},
	{"yellow", "Yellow", "isc:yellow"},
}

func (c SpecificColor) String() string               { return specificColors.name(uint8(c)) }
func (c SpecificColor) MarshalText() ([]byte, error) { return []byte(c.String()), nil }
func (c *SpecificColor) UnmarshalText(b []byte) error {
	return specificColors.parse("specific-color", string(b), (*uint8)(c))
}
func (c *SpecificColor) Set(v string) error { return c.UnmarshalText([]byte(v)) }
func (SpecificColor) Type() string          { return "specific-color" }

// ImageType filters image results by kind of picture.
type ImageType uint8

const (
	TypeAny ImageType = iota
	TypeFace
	TypePhoto
	TypeClipArt
	TypeLineArt
	TypeAnimated
)

var imageTypes = options{
	{"any", "Any type", ""},
	{"face", "Face", "itp:face"},
	{"photo", "Photo", "itp:photo"},
	{"clipart", "Clip art", "itp:clipart"},
	{"lineart", "Line drawing", "itp:lineart"},
	{"animated", "Animated", "itp:animated"},
}

func (t ImageType) String() string                { return imageTypes.name(uint8(t)) }
func (t ImageType) MarshalText() ([]byte, error)  { return []byte(t.String()), nil }
func (t *ImageType) UnmarshalText(b []byte) error { return imageTypes.parse("image-type", string(b), (*uint8)(t)) }
func (t *ImageType) Set(v string) error           { return t.UnmarshalText([]byte(v)) }
func (ImageType) Type() string                    { return "image-type" }

// Region restricts image results to pages from one country (the cr
// parameter).
type Region uint8

const (
	RegionAny Region = iota
	UnitedStates
	UnitedKingdom
	Canada
	Australia
	Germany
	France
	India
	Japan
	Brazil
	Afghanistan
	Albania
	Algeria
)

var regions = options{
	{"any", "Any region", ""},
	{"us", "United States", "countryUS"},
	{"gb", "United Kingdom", "countryGB"},
	{"ca", "Canada", "countryCA"},
	{"au", "Australia", "countryAU"},
	{"de", "Germany", "countryDE"},
	{"fr", "France", "countryFR"},
	{"in", "India", "countryIN"},
	{"jp", "Japan", "countryJP"},
	{"br", "Brazil", "countryBR"},
	{"af", "Afghanistan", "countryAF"},
	{"al", "Albania", "countryAL"},
	{"dz", "Algeria", "countryDZ"},
}

func (r Region) String() string                { return regions.name(uint8(r)) }
func (r Region) MarshalText() ([]byte, error)  { return []byte(r.String()), nil }
func (r *Region) UnmarshalText(b []byte) error { return regions.parse("region", string(b), (*uint8)(r)) }
func (r *Region) Set(v string) error           { return r.UnmarshalText([]byte(v)) }
func (Region) Type() string                    { return "region" }

// UsageRights filters image results by licence.
type UsageRights uint8

const (
	RightsAny UsageRights = iota
	RightsShare
	RightsShareCommercial
	RightsModify
	RightsModifyCommercial
)

var usageRights = options{
	{"any", "All", ""},
	{"share", "Free to use or share", "sur:f"},
	{"share-commercial", "Free to use or share commercially", "sur:fc"},
	{"modify", "Free to use or share or modify", "sur:fm"},
	{"modify-commercial", "Free to use or share or modify commercially", "sur:fmc"},
}

func (u UsageRights) String() string                { return usageRights.name(uint8(u)) }
func (u UsageRights) MarshalText() ([]byte, error)  { return []byte(u.String()), nil }
func (u *UsageRights) UnmarshalText(b []byte) error { return usageRights.parse("rights", string(b), (*uint8)(u)) }
func (u *UsageRights) Set(v string) error           { return u.UnmarshalText([]byte(v)) }
func (UsageRights) Type() string                    { return "rights" }
