package files

import (
	"strings"

	"github.com/anaysharma/csv-xl-to-doc/pkg/contracts/domain"
)

// classSeparator splits "<school or grade> - <class>" style base names
const classSeparator = " - "

// ClassLabel derives the class label from an input base name: the part after
// the last " - " (or the whole name), upper-cased and prefixed.
//
//	ClassLabel("Grade 5 - 5a", "CLASS") == "CLASS 5A"
func ClassLabel(base, prefix string) string {
	class := base
	if idx := strings.LastIndex(base, classSeparator); idx >= 0 {
		class = base[idx+len(classSeparator):]
	}
	class = strings.ToUpper(strings.TrimSpace(class))

	if prefix == "" {
		return class
	}
	return prefix + " " + class
}

// OutputName returns the report file name for an input base name
func OutputName(base, suffix string, format domain.ReportFormat) string {
	return base + suffix + format.Extension()
}

// TableName names one sheet of a workbook input
func TableName(workbookBase, sheet string) string {
	return workbookBase + classSeparator + sheet
}
