package importer

import "fmt"

// Warning codes for the degradation paths an import tolerates.
const (
	WarnMetaLineIgnored  = "meta_line_ignored"
	WarnDateDefaulted    = "date_defaulted"
	WarnTitleDefaulted   = "title_defaulted"
	WarnLeadingDiscarded = "leading_content_discarded"
)

// Warning records a tolerated defect in the imported document. Content
// quality problems never abort an import; they degrade to defaults and are
// reported here so the caller can surface them.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func warnf(code, format string, args ...interface{}) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}
