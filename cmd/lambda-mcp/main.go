package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/samber/lo"

	"github.com/vic/golambda/pkg/church"
	"github.com/vic/golambda/pkg/lambda"
	"github.com/vic/golambda/pkg/reduce"
	"github.com/vic/golambda/pkg/store"
)

// defaultMaxSteps keeps a divergent term from hanging the server.
const defaultMaxSteps = 100000

type tools struct {
	lib *store.Store
}

// parse parses src and resolves it against the library.
func (t *tools) parse(ctx context.Context, src string) (lambda.Term, error) {
	term, err := lambda.Parse(src)
	if err != nil {
		return nil, err
	}
	env, err := t.lib.Env(ctx)
	if err != nil {
		return nil, err
	}
	return lambda.Resolve(term, env), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal value: %w", err)
	}
	return mcp.NewToolResultText(string(out)), nil
}

func maxSteps(request mcp.CallToolRequest) uint64 {
	n := request.GetInt("max_steps", defaultMaxSteps)
	if n < 0 {
		return 0
	}
	return uint64(n)
}

func (t *tools) handleNormalize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	src, err := request.RequireString("term")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	strategy, err := reduce.ParseStrategy(request.GetString("strategy", "normal"), request.GetBool("eta", false))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	term, err := t.parse(ctx, src)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	r := reduce.New(strategy, reduce.WithMaxSteps(maxSteps(request)))
	res, err := r.Reduce(ctx, term)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"term":     res.String(),
		"strategy": strategy.String(),
		"steps":    r.GetStats().TotalReductions,
	})
}

func (t *tools) handleFreeVariables(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	src, err := request.RequireString("term")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	term, err := lambda.Parse(src)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(lambda.SortedNames(lambda.FreeVariables(term)))
}

func (t *tools) handleCompare(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	src, err := request.RequireString("term")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	term, err := t.parse(ctx, src)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results := reduce.Compare(ctx, term, request.GetBool("eta", false),
		reduce.WithReducerOptions(reduce.WithMaxSteps(maxSteps(request))))
	return jsonResult(lo.Map(results, func(r reduce.Result, _ int) map[string]any {
		out := map[string]any{
			"strategy": r.Strategy.String(),
			"steps":    r.Stats.TotalReductions,
		}
		if r.Err != nil {
			out["error"] = r.Err.Error()
		} else {
			out["term"] = r.Term.String()
		}
		return out
	}))
}

func (t *tools) handleDefine(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	src, err := request.RequireString("term")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	def, err := t.lib.Define(ctx, name, src)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]string{"name": def.Name, "term": def.Term.String()})
}

func (t *tools) handleUndefine(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := t.lib.Delete(ctx, name); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("deleted " + name), nil
}

func (t *tools) handleDefinitions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	defs, err := t.lib.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(lo.Map(defs, func(d store.Definition, _ int) map[string]string {
		return map[string]string{"name": d.Name, "source": d.Source, "term": d.Term.String()}
	}))
}

func (t *tools) handleEncode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := request.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	value, err := request.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	switch kind {
	case "bool":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(church.Bool(b).String()), nil
	case "nat":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(church.Numeral(n).String()), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown kind %q, want bool or nat", kind)), nil
	}
}

func (t *tools) handleDecode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := request.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	src, err := request.RequireString("term")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	term, err := t.parse(ctx, src)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	// Decoding normalizes without a budget, so bound it first.
	term, err = reduce.New(reduce.ApplicativeStrategy(false), reduce.WithMaxSteps(maxSteps(request))).Reduce(ctx, term)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	switch kind {
	case "bool":
		b, ok := church.ToBool(term)
		if !ok {
			return mcp.NewToolResultError("term is not a Church boolean"), nil
		}
		return mcp.NewToolResultText(strconv.FormatBool(b)), nil
	case "nat":
		n, ok := church.ToNumeral(term)
		if !ok {
			return mcp.NewToolResultError("term is not a Church numeral"), nil
		}
		return mcp.NewToolResultText(strconv.FormatUint(n, 10)), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown kind %q, want bool or nat", kind)), nil
	}
}

func main() {
	dbPath := os.Getenv("LAMBDA_DB")
	if dbPath == "" {
		dbPath = ":memory:"
	}
	lib, err := store.Open(context.Background(), dbPath)
	if err != nil {
		log.Fatalf("open library: %v", err)
	}
	defer lib.Close()
	log.Printf("definitions library: %s", dbPath)

	t := &tools{lib: lib}

	s := server.NewMCPServer(
		"golambda",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s.AddTool(
		mcp.NewTool("lambda_normalize",
			mcp.WithDescription("Reduce a lambda term. Free variables defined in the library are resolved first."),
			mcp.WithString("term",
				mcp.Required(),
				mcp.Description(`Term to reduce, e.g. (\x.x) a or (λf x.f x) g`),
			),
			mcp.WithString("strategy",
				mcp.Description("name, value, normal, applicative or head (default normal)"),
			),
			mcp.WithBoolean("eta",
				mcp.Description("Enable η-reduction (normal, applicative, head only)"),
			),
			mcp.WithNumber("max_steps",
				mcp.Description("Contraction budget, 0 for unbounded"),
			),
		),
		t.handleNormalize,
	)

	s.AddTool(
		mcp.NewTool("lambda_free_variables",
			mcp.WithDescription("List the free variables of a term."),
			mcp.WithString("term",
				mcp.Required(),
				mcp.Description("Term to analyze"),
			),
		),
		t.handleFreeVariables,
	)

	s.AddTool(
		mcp.NewTool("lambda_compare",
			mcp.WithDescription("Reduce a term under every strategy and report each result."),
			mcp.WithString("term",
				mcp.Required(),
				mcp.Description("Term to reduce"),
			),
			mcp.WithBoolean("eta",
				mcp.Description("Enable η-reduction where supported"),
			),
			mcp.WithNumber("max_steps",
				mcp.Description("Contraction budget per strategy, 0 for unbounded"),
			),
		),
		t.handleCompare,
	)

	s.AddTool(
		mcp.NewTool("lambda_define",
			mcp.WithDescription("Store a named term in the library. Earlier definitions are resolved into it."),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Identifier to define"),
			),
			mcp.WithString("term",
				mcp.Required(),
				mcp.Description("Term to bind to the name"),
			),
		),
		t.handleDefine,
	)

	s.AddTool(
		mcp.NewTool("lambda_undefine",
			mcp.WithDescription("Delete a named term from the library."),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Identifier to delete"),
			),
		),
		t.handleUndefine,
	)

	s.AddTool(
		mcp.NewTool("lambda_definitions",
			mcp.WithDescription("List the library."),
		),
		t.handleDefinitions,
	)

	s.AddTool(
		mcp.NewTool("lambda_encode",
			mcp.WithDescription("Church-encode a boolean or natural number."),
			mcp.WithString("kind",
				mcp.Required(),
				mcp.Description("bool or nat"),
			),
			mcp.WithString("value",
				mcp.Required(),
				mcp.Description("true/false or a non-negative integer"),
			),
		),
		t.handleEncode,
	)

	s.AddTool(
		mcp.NewTool("lambda_decode",
			mcp.WithDescription("Normalize a term and decode it as a Church boolean or numeral."),
			mcp.WithString("kind",
				mcp.Required(),
				mcp.Description("bool or nat"),
			),
			mcp.WithString("term",
				mcp.Required(),
				mcp.Description("Term to decode"),
			),
			mcp.WithNumber("max_steps",
				mcp.Description("Contraction budget, 0 for unbounded"),
			),
		),
		t.handleDecode,
	)

	if err := server.ServeStdio(s); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
