package recent

import "github.com/calvinalkan/gsearch/internal/query"

// parts is the JSON layout of one entry's fields inside the INI file. The
// layout is flat so files written by the desktop form load too:
// there, enum fields hold form labels ("Any size", "Web"), which the query
// parsers accept.
type parts struct {
	AllWords      string           `json:"all_words"`
	TermsLocation query.Location   `json:"terms_location"`
	ExactPhrase   string           `json:"exact_phrase"`
	ExcludeWords  string           `json:"exclude_words"`
	OrWords       string           `json:"or_words"`
	Site          string           `json:"site"`
	FileType      string           `json:"filetype"`
	InTitle       string           `json:"intitle"`
	InURL         string           `json:"inurl"`
	RangeFrom     string           `json:"range_from"`
	RangeTo       string           `json:"range_to"`
	RangeUnit     string           `json:"range_unit"`
	Before        query.Date       `json:"before"`
	After         query.Date       `json:"after"`
	SearchType    query.SearchType `json:"search_type"`

	ImageSize     query.ImageSize     `json:"image_size"`
	AspectRatio   query.AspectRatio   `json:"aspect_ratio"`
	ColorFilter   query.Color         `json:"color_filter"`
	SpecificColor query.SpecificColor `json:"specific_color"`
	ImageType     query.ImageType     `json:"image_type"`
	Region        query.Region        `json:"region"`
	UsageRights   query.UsageRights   `json:"usage_rights"`
}

func partsOf(s query.SearchSpec) parts {
	return parts{
		AllWords:      s.AllWords,
		TermsLocation: s.WordsLocation,
		ExactPhrase:   s.ExactPhrase,
		ExcludeWords:  s.ExcludedWords,
		OrWords:       s.OrWords,
		Site:          s.Site,
		FileType:      s.FileType,
		InTitle:       s.InTitle,
		InURL:         s.InURL,
		RangeFrom:     s.RangeLow,
		RangeTo:       s.RangeHigh,
		RangeUnit:     s.RangeUnit,
		Before:        s.Before,
		After:         s.After,
		SearchType:    s.SearchType,
		ImageSize:     s.Images.Size,
		AspectRatio:   s.Images.Aspect,
		ColorFilter:   s.Images.Color,
		SpecificColor: s.Images.SpecificColor,
		ImageType:     s.Images.Type,
		Region:        s.Images.Region,
		UsageRights:   s.Images.Rights,
	}
}

func (p parts) spec() query.SearchSpec {
	return query.SearchSpec{
		AllWords:      p.AllWords,
		WordsLocation: p.TermsLocation,
		ExactPhrase:   p.ExactPhrase,
		ExcludedWords: p.ExcludeWords,
		OrWords:       p.OrWords,
		Site:          p.Site,
		FileType:      p.FileType,
		InTitle:       p.InTitle,
		InURL:         p.InURL,
		RangeLow:      p.RangeFrom,
		RangeHigh:     p.RangeTo,
		RangeUnit:     p.RangeUnit,
		Before:        p.Before,
		After:         p.After,
		SearchType:    p.SearchType,
		Images: query.ImageFilters{
			Size:          p.ImageSize,
			Aspect:        p.AspectRatio,
			Color:         p.ColorFilter,
			SpecificColor: p.SpecificColor,
			Type:          p.ImageType,
			Region:        p.Region,
			Rights:        p.UsageRights,
		},
	}
}
