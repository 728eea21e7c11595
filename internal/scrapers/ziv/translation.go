package ziv

import (
	"carddraw-backend/pkg/htmlutil"
	"unicode/utf16"

	"github.com/PuerkitoBio/goquery"
)

// translations only exist as tooltips, the handler reads like
// `return overlib('Translated Title')` and the translation is cut out of it by offset.
const (
	translation_selector   = "span[onmouseover]"
	translation_attribute  = "onmouseover"
	translation_prefix_len = len("return overlib('")
	translation_suffix_len = len("')")
)

// TranslationText returns the tooltip translation carried by the node or the first
// of its descendants that has one. Text nodes never carry one.
func TranslationText(sel *goquery.Selection) string {
	if sel.Length() == 0 || htmlutil.IsText(sel) {
		return ""
	}
	node := sel.First()
	if !node.Is(translation_selector) {
		node = node.Find(translation_selector).First()
	}
	if node.Length() == 0 {
		return ""
	}
	return sliceTranslation(node.AttrOr(translation_attribute, ""))
}

// sliceTranslation cuts the handler on utf-16 offsets so it counts characters the
// same way the page's own scripts do.
func sliceTranslation(handler string) string {
	units := utf16.Encode([]rune(handler))
	end := len(units) - translation_suffix_len
	if end <= translation_prefix_len {
		return ""
	}
	return string(utf16.Decode(units[translation_prefix_len:end]))
}
