package workflow

import (
	"strings"
	"unicode/utf8"

	"github.com/BetterCallFirewall/Certscope/internal/models"
)

// Validate применяет структурные проверки к записи резюме.
// Чистая функция: никаких побочных эффектов, повторный вызов на той же
// записи дает тот же результат. Feedback перечисляет ВСЕ нарушенные
// проверки, по одной строке на каждую, а не только первую.
func Validate(summary *models.SummaryRecord) (bool, string) {
	var issues []string

	if summary == nil {
		issues = append(issues, "Summary is missing")
	} else {
		// минимум 10 символов, не байт: резюме может быть не на латинице
		if utf8.RuneCountInString(summary.Summary) < 10 {
			issues = append(issues, "Summary text too short")
		}
		if len(summary.Findings) == 0 {
			issues = append(issues, "At least one finding required")
		}
		if len(summary.Recommendations) == 0 {
			issues = append(issues, "At least one recommendation required")
		}
	}

	if len(issues) == 0 {
		return true, ""
	}
	return false, strings.Join(issues, "\n")
}
