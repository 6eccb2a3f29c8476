package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/watchstore/internal/model"
)

var (
	queryWhere  []string
	queryOrder  []string
	queryLimit  int
	queryOffset int
	queryFields []string
)

var queryCmd = &cobra.Command{
	Use:   "query <table>",
	Short: "Query a table with conditions, sorting, and pagination",
	Long: `Query one table. Conditions are ANDed together and use the form
field<op>value, where <op> is one of =, !=, >, <, >=, <=, or ~ for a
case-insensitive substring match. Values that parse as numbers or
booleans are compared as such.

Examples:
  watchstore query products --where "status=active" --order price
  watchstore query products --where "price>=500" --where "price<1500"
  watchstore query products --where "name~meridian" --fields name,price
  watchstore query orders --order -created_at --limit 10`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringArrayVarP(&queryWhere, "where", "w", nil, "Filter condition (repeatable)")
	queryCmd.Flags().StringArrayVarP(&queryOrder, "order", "o", nil, "Sort key, prefix with - for descending (repeatable)")
	queryCmd.Flags().IntVarP(&queryLimit, "limit", "l", 0, "Maximum results (0 = no limit)")
	queryCmd.Flags().IntVar(&queryOffset, "offset", 0, "Results to skip")
	queryCmd.Flags().StringSliceVarP(&queryFields, "fields", "f", nil, "Comma-separated fields to return")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	q := model.Query{Limit: queryLimit, Offset: queryOffset, Fields: queryFields}

	for _, expr := range queryWhere {
		cond, err := parseCondition(expr)
		if err != nil {
			return err
		}
		q.Where = append(q.Where, cond)
	}
	for _, key := range queryOrder {
		if field, ok := strings.CutPrefix(key, "-"); ok {
			q.Order = append(q.Order, model.Desc(field))
		} else {
			q.Order = append(q.Order, model.Asc(key))
		}
	}

	m, err := openManager()
	if err != nil {
		return err
	}
	defer m.Close()

	records, err := m.Find(args[0], q)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(records)
		return nil
	}
	for _, rec := range records {
		printJSON(rec)
	}
	if !quiet {
		fmt.Printf("%d record(s)\n", len(records))
	}
	return nil
}

// condOps maps CLI operator spellings to constructors, longest first so
// ">=" is not read as ">".
var condOps = []struct {
	token string
	build func(field string, value any) model.Condition
}{
	{">=", model.Gte},
	{"<=", model.Lte},
	{"!=", model.Neq},
	{"=", model.Eq},
	{">", model.Gt},
	{"<", model.Lt},
	{"~", model.Like},
}

// parseCondition reads a field<op>value expression.
func parseCondition(expr string) (model.Condition, error) {
	for _, op := range condOps {
		idx := strings.Index(expr, op.token)
		if idx <= 0 {
			continue
		}
		field := strings.TrimSpace(expr[:idx])
		// "price!=10" would also split at "="; require the exact token.
		if strings.ContainsAny(field, "<>!~=") {
			continue
		}
		value := parseValue(strings.TrimSpace(expr[idx+len(op.token):]))
		return op.build(field, value), nil
	}
	return model.Condition{}, fmt.Errorf("%w: %q", model.ErrInvalidCondition, expr)
}

// parseValue promotes numeric and boolean strings; everything else
// stays a string.
func parseValue(s string) any {
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
