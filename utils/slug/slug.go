package slug

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"gorm.io/gorm"
)

var dashRun = regexp.MustCompile(`-+`)

// Make normalizes a display name into a slug:
// - lower-case
// - whitespace, underscores and other non-alphanumerics become "-"
// - runs of "-" collapse into one
// - leading/trailing "-" are trimmed
func Make(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	lastDash := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}

	out := strings.Trim(b.String(), "-")
	return dashRun.ReplaceAllString(out, "-")
}

// EnsureUnique returns base if no live row in table already uses it, otherwise
// appends the next free numeric suffix (base-2, base-3, ...). Soft-deleted
// rows still count: their slug stays reserved so a restore cannot collide.
func EnsureUnique(db *gorm.DB, base, table, column string) (string, error) {
	var count int64
	if err := db.Table(table).
		Where(fmt.Sprintf("%s = ?", column), base).
		Count(&count).Error; err != nil {
		return "", err
	}
	if count == 0 {
		return base, nil
	}

	type row struct{ Slug string }
	var rows []row
	like := base + "-%"
	if err := db.Table(table).
		Select(column+" as slug").
		Where(fmt.Sprintf("%s = ? OR %s LIKE ?", column, column), base, like).
		Find(&rows).Error; err != nil {
		return "", err
	}

	maxN := 1
	re := regexp.MustCompile(`^` + regexp.QuoteMeta(base) + `-(\d+)$`)
	for _, r := range rows {
		if m := re.FindStringSubmatch(r.Slug); len(m) == 2 {
			var n int
			fmt.Sscanf(m[1], "%d", &n)
			if n > maxN {
				maxN = n
			}
		}
	}

	return fmt.Sprintf("%s-%d", base, maxN+1), nil
}
