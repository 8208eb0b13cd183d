// Package render turns normalized results into the text returned to the
// calling agent: indented JSON, or human-readable Markdown with per-entity
// table layouts.
package render

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/stratuspay/payroll-mcp/internal/domain/apierror"
	"github.com/stratuspay/payroll-mcp/internal/domain/entity"
	"github.com/stratuspay/payroll-mcp/internal/domain/paging"
)

// Format selects the output mode.
type Format string

const (
	// FormatJSON serializes results as indented JSON, unmodified.
	FormatJSON Format = "json"
	// FormatMarkdown renders results as headed Markdown tables and field lists.
	FormatMarkdown Format = "markdown"
)

// Kind selects the Markdown layout for a result. The set is closed: known
// entity kinds get dedicated column layouts, everything else uses the
// generic table.
type Kind int

const (
	KindGeneric Kind = iota
	KindCompany
	KindEmployee
	KindContractor
	KindPayroll
	KindPaySchedule
)

// DefaultMaxSize is the rendered-output cap when none is configured.
const DefaultMaxSize = 50000

// genericColumnLimit bounds the generic table to the first item's top keys.
const genericColumnLimit = 5

// truncationNotice is appended when output exceeds the configured cap.
const truncationNotice = "\n\n*[output truncated]*"

// Renderer formats results and errors. Zero value is not usable; construct
// with New.
type Renderer struct {
	format  Format
	maxSize int
}

// New creates a Renderer. maxSize <= 0 falls back to DefaultMaxSize.
func New(format Format, maxSize int) *Renderer {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if format != FormatMarkdown {
		format = FormatJSON
	}
	return &Renderer{format: format, maxSize: maxSize}
}

// Result renders a successful result.
func (r *Renderer) Result(data any, kind Kind) string {
	if r.format == FormatJSON {
		return r.truncate(jsonBlockContent(data))
	}
	return r.truncate(r.markdown(data, kind))
}

// Error renders a classified failure. The message always states retryability;
// a machine-readable details block accompanies the human line.
func (r *Renderer) Error(cerr *apierror.ClassifiedError) string {
	var b strings.Builder
	b.WriteString("Error: ")
	b.WriteString(cerr.Message)
	if cerr.Retryable {
		b.WriteString(" (retryable)")
	}
	b.WriteString("\n\n```json\n")

	details := map[string]any{
		"kind":      string(cerr.Kind),
		"retryable": cerr.Retryable,
	}
	if cerr.StatusCode != 0 {
		details["statusCode"] = cerr.StatusCode
	}
	if cerr.RetryAfterSeconds != 0 {
		details["retryAfterSeconds"] = cerr.RetryAfterSeconds
	}
	raw, _ := json.MarshalIndent(details, "", "  ")
	b.Write(raw)
	b.WriteString("\n```")
	return r.truncate(b.String())
}

func (r *Renderer) truncate(s string) string {
	if len(s) <= r.maxSize {
		return s
	}
	return s[:r.maxSize] + truncationNotice
}

// jsonBlockContent serializes data as indented JSON.
func jsonBlockContent(data any) string {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		// Data originates from json.Unmarshal output and plain maps, so this
		// is unreachable in practice; degrade to fmt rather than fail.
		return fmt.Sprintf("%v", data)
	}
	return string(raw)
}

// markdown dispatches on data shape.
func (r *Renderer) markdown(data any, kind Kind) string {
	switch v := data.(type) {
	case *paging.Page:
		return renderCollection(v.Items, kind, collectionMeta{
			total:   v.Total,
			hasMore: v.HasMore,
		})
	case []entity.Entity:
		return renderCollection(v, kind, collectionMeta{})
	case entity.Entity:
		return renderObject(v, kind)
	case nil:
		return "*(no content)*"
	default:
		return jsonFenced(v)
	}
}

type collectionMeta struct {
	total   int
	hasMore bool
}

// renderCollection renders a header with shown/total counts, then a table,
// or an explicit notice when empty.
func renderCollection(items []entity.Entity, kind Kind, meta collectionMeta) string {
	var b strings.Builder
	b.WriteString("## ")
	b.WriteString(pluralTitle(kind))
	b.WriteString("\n\n")

	if len(items) == 0 {
		b.WriteString("No items found.")
		return b.String()
	}

	if meta.total > 0 {
		fmt.Fprintf(&b, "Showing %d of %d", len(items), meta.total)
	} else {
		fmt.Fprintf(&b, "Showing %d", len(items))
	}
	if meta.hasMore {
		b.WriteString(" (more available)")
	}
	b.WriteString("\n\n")

	cols := columnsFor(kind, items)
	writeTable(&b, cols, items)
	return b.String()
}

// column pairs a header label with the domain field it reads.
type column struct {
	header string
	field  string
}

// columnsFor returns the dedicated layout for known kinds, or the generic
// layout (first item's top keys, sorted, capped) otherwise.
func columnsFor(kind Kind, items []entity.Entity) []column {
	switch kind {
	case KindEmployee:
		return []column{
			{"First Name", "firstName"},
			{"Last Name", "lastName"},
			{"Email", "email"},
			{"Department", "department"},
			{"Onboarded", "onboarded"},
		}
	case KindContractor:
		return []column{
			{"First Name", "firstName"},
			{"Last Name", "lastName"},
			{"Business Name", "businessName"},
			{"Type", "type"},
			{"Wage Type", "wageType"},
			{"Active", "isActive"},
		}
	case KindPayroll:
		return []column{
			{"Payroll UUID", "payrollUuid"},
			{"Check Date", "checkDate"},
			{"Processed", "processed"},
			{"Deadline", "payrollDeadline"},
			{"Off-Cycle", "offCycle"},
		}
	case KindCompany:
		return []column{
			{"Name", "name"},
			{"Trade Name", "tradeName"},
			{"EIN", "ein"},
			{"Entity Type", "entityType"},
			{"Status", "companyStatus"},
		}
	case KindPaySchedule:
		return []column{
			{"Name", "name"},
			{"Frequency", "frequency"},
			{"Anchor Pay Date", "anchorPayDate"},
			{"Auto Pay", "autoPay"},
			{"Active", "active"},
		}
	default:
		keys := make([]string, 0, len(items[0]))
		for k := range items[0] {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if len(keys) > genericColumnLimit {
			keys = keys[:genericColumnLimit]
		}
		cols := make([]column, 0, len(keys))
		for _, k := range keys {
			cols = append(cols, column{header: k, field: k})
		}
		return cols
	}
}

func writeTable(b *strings.Builder, cols []column, items []entity.Entity) {
	for i, c := range cols {
		if i > 0 {
			b.WriteString(" | ")
		} else {
			b.WriteString("| ")
		}
		b.WriteString(c.header)
	}
	b.WriteString(" |\n")
	for range cols {
		b.WriteString("|---")
	}
	b.WriteString("|\n")
	for _, item := range items {
		for i, c := range cols {
			if i > 0 {
				b.WriteString(" | ")
			} else {
				b.WriteString("| ")
			}
			b.WriteString(cellValue(item[c.field]))
		}
		b.WriteString(" |\n")
	}
}

// renderObject renders a single entity as a heading plus field list. Nested
// object/array values become embedded JSON blocks rather than being flattened.
func renderObject(obj entity.Entity, kind Kind) string {
	var b strings.Builder
	b.WriteString("## ")
	b.WriteString(singularTitle(kind))
	b.WriteString("\n")

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := obj[k]
		switch v.(type) {
		case map[string]any, []any, []entity.Entity:
			fmt.Fprintf(&b, "\n- **%s**:\n\n%s\n", k, jsonFenced(v))
		default:
			fmt.Fprintf(&b, "\n- **%s**: %s", k, scalarValue(v))
		}
	}
	return b.String()
}

func jsonFenced(v any) string {
	return "```json\n" + jsonBlockContent(v) + "\n```"
}

// cellValue formats a value for a table cell; missing values render as "-".
func cellValue(v any) string {
	if v == nil {
		return "-"
	}
	switch val := v.(type) {
	case map[string]any, []any, []entity.Entity:
		raw, err := json.Marshal(val)
		if err != nil {
			return "-"
		}
		return escapeCell(string(raw))
	default:
		return escapeCell(scalarValue(v))
	}
}

func scalarValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// escapeCell keeps pipes and newlines from breaking the table.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func singularTitle(kind Kind) string {
	switch kind {
	case KindCompany:
		return "Company"
	case KindEmployee:
		return "Employee"
	case KindContractor:
		return "Contractor"
	case KindPayroll:
		return "Payroll"
	case KindPaySchedule:
		return "Pay Schedule"
	default:
		return "Result"
	}
}

func pluralTitle(kind Kind) string {
	switch kind {
	case KindCompany:
		return "Companies"
	case KindEmployee:
		return "Employees"
	case KindContractor:
		return "Contractors"
	case KindPayroll:
		return "Payrolls"
	case KindPaySchedule:
		return "Pay Schedules"
	default:
		return "Results"
	}
}
