// Package lang maps common language codes to the identifiers the OCR engine
// expects for its traineddata files.
package lang

import "strings"

// aliases maps ISO-639-1 codes and a few engine-specific spellings used by
// other OCR stacks to Tesseract traineddata names. Codes already in
// Tesseract's format (eng, fra, chi_sim, ...) are not listed; they pass
// through unchanged.
var aliases = map[string]string{
	"en":          "eng",
	"fr":          "fra",
	"french":      "fra",
	"de":          "deu",
	"german":      "deu",
	"es":          "spa",
	"spanish":     "spa",
	"pt":          "por",
	"portuguese":  "por",
	"it":          "ita",
	"italian":     "ita",
	"ja":          "jpn",
	"japan":       "jpn",
	"ko":          "kor",
	"korean":      "kor",
	"zh":          "chi_sim",
	"ch":          "chi_sim",
	"zh-cn":       "chi_sim",
	"zh-tw":       "chi_tra",
	"chinese_cht": "chi_tra",
	"ar":          "ara",
	"arabic":      "ara",
	"ru":          "rus",
	"cyrillic":    "rus",
}

// Resolve returns the engine identifier for a language code. Unmapped codes
// pass through unchanged (aside from case folding), so native engine codes
// always work.
func Resolve(code string) string {
	c := strings.ToLower(strings.TrimSpace(code))
	if c == "" {
		return ""
	}
	if mapped, ok := aliases[c]; ok {
		return mapped
	}
	return c
}
