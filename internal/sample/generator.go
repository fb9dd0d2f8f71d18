package sample

import (
	"fmt"
	"strings"
	"time"

	"erd-builder/internal/schema"

	"github.com/brianvoe/gofakeit/v6"
)

// Dates are drawn from the year before this instant so a seed always
// reproduces the same rows.
var dateAnchor = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// Generator produces fake column values. The same seed yields the same values.
type Generator struct {
	faker *gofakeit.Faker
}

func NewGenerator(seed int64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

func isIntegerType(dataType string) bool {
	t := strings.ToLower(dataType)
	return strings.Contains(t, "int") || strings.Contains(t, "serial") || t == "long" || t == "number"
}

func isTextType(dataType string) bool {
	t := strings.ToLower(dataType)
	return strings.Contains(t, "char") || strings.Contains(t, "text") ||
		strings.Contains(t, "string") || strings.Contains(t, "clob")
}

// Value generates a value for a non-key column from its type and the
// meaning of its name.
func (g *Generator) Value(col schema.Column) any {
	dataType := strings.ToLower(col.Type)
	colName := strings.ToLower(col.Name)
	meaning := AnalyzeMeaning(col.Name)
	f := g.faker

	// 1. Strings: meaning first
	if isTextType(dataType) || dataType == "" {
		isID := strings.HasSuffix(colName, "id")

		switch {
		case strings.Contains(meaning, "year"):
			return fmt.Sprintf("%d", 2000+f.Number(0, 25))
		case !isID && strings.Contains(meaning, "phone"):
			return f.Phone()
		case !isID && strings.Contains(meaning, "email"):
			return f.Email()
		case !isID && (strings.Contains(meaning, "first") && strings.Contains(meaning, "name")):
			return f.FirstName()
		case !isID && (strings.Contains(meaning, "last") && strings.Contains(meaning, "name")):
			return f.LastName()
		case !isID && strings.Contains(meaning, "name"):
			return f.Name()
		case !isID && (strings.Contains(meaning, "address") || strings.Contains(meaning, "street")):
			return f.Street()
		case strings.Contains(meaning, "zipcode") || strings.Contains(meaning, "postal"):
			return f.Zip()
		case strings.Contains(meaning, "yesno") || strings.Contains(meaning, "flag"):
			if f.Bool() {
				return "Y"
			}
			return "N"
		case !isID && strings.Contains(meaning, "country"):
			return f.Country()
		case !isID && strings.Contains(meaning, "city"):
			return f.City()
		case strings.Contains(meaning, "ip"):
			return f.IPv4Address()
		case strings.Contains(meaning, "url") || strings.Contains(meaning, "image"):
			return f.URL()
		case !isID && strings.Contains(meaning, "status"):
			return f.RandomString([]string{"ACTIVE", "INACTIVE", "PENDING"})
		case !isID && (strings.Contains(meaning, "title") || strings.Contains(meaning, "subject")):
			return f.Sentence(3)
		case !isID && (strings.Contains(meaning, "description") || strings.Contains(meaning, "comment") ||
			strings.Contains(meaning, "message") || strings.Contains(meaning, "text")):
			return f.Sentence(10)
		case !isID && (strings.Contains(meaning, "code") || strings.Contains(meaning, "type")):
			return strings.ToUpper(f.LetterN(3))
		}
		return f.Word()
	}

	// 2. Dates and times
	if strings.Contains(dataType, "date") || strings.Contains(dataType, "time") {
		val := f.DateRange(dateAnchor.AddDate(-1, 0, 0), dateAnchor)
		if dataType == "date" {
			return val.Format("2006-01-02")
		}
		return val.Format("2006-01-02 15:04:05")
	}

	// 3. Numbers
	if isIntegerType(dataType) {
		if strings.Contains(meaning, "yesno") || strings.Contains(colName, "active") || strings.Contains(colName, "enabled") {
			return f.Number(0, 1)
		}
		if strings.Contains(meaning, "year") {
			return 2000 + f.Number(0, 25)
		}
		if strings.Contains(dataType, "tinyint") {
			return f.Number(0, 127)
		}
		if strings.Contains(dataType, "smallint") {
			return f.Number(1, 30000)
		}
		if strings.Contains(meaning, "count") || strings.Contains(meaning, "quantity") {
			return f.Number(1, 100)
		}
		return f.Number(1, 50000)
	}

	if strings.Contains(dataType, "decimal") || strings.Contains(dataType, "numeric") ||
		strings.Contains(dataType, "float") || strings.Contains(dataType, "double") ||
		strings.Contains(dataType, "real") || strings.Contains(dataType, "money") {
		if strings.Contains(meaning, "latitude") {
			return f.Latitude()
		}
		if strings.Contains(meaning, "longitude") {
			return f.Longitude()
		}
		return f.Price(0.99, 999.99)
	}

	// 4. Booleans
	if strings.Contains(dataType, "bool") || dataType == "bit" {
		return f.Bool()
	}

	// 5. Binary
	if strings.Contains(dataType, "binary") || strings.Contains(dataType, "blob") || strings.Contains(dataType, "bytea") {
		return []byte("dummy")
	}

	if col.Nullable {
		return nil
	}
	return f.Word()
}

// keyValue generates the n-th (1-based) primary key value of a column.
func (g *Generator) keyValue(col schema.Column, n int) any {
	if isIntegerType(col.Type) {
		return n
	}
	if isTextType(col.Type) || col.Type == "" {
		return g.faker.UUID()
	}
	return g.Value(col)
}
