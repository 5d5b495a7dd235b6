// Command aedcli drives the judge protocol and the reconstruction engine
// from the shell: register/select/explore/guess talk to a judge (real or
// mock) directly; solve runs the full orchestrator end to end; visualize
// renders a saved map to SVG.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dshills/aedificium/pkg/aedificium"
	"github.com/dshills/aedificium/pkg/anneal"
	"github.com/dshills/aedificium/pkg/duplicate"
	"github.com/dshills/aedificium/pkg/export"
	"github.com/dshills/aedificium/pkg/fingerprint"
	"github.com/dshills/aedificium/pkg/judge"
	"github.com/dshills/aedificium/pkg/orchestrator"
	"github.com/dshills/aedificium/pkg/registry"
	"github.com/dshills/aedificium/pkg/satsolve"
)

const version = "0.1.0"

var (
	judgeURL   = flag.String("judge", "http://localhost:8080", "Base URL of the judge (real or mock)")
	idFile     = flag.String("idfile", ".aedcli_id", "File holding the registered session id")
	idFlag     = flag.String("id", "", "Session id, overriding -idfile")
	satBinary  = flag.String("sat-binary", "kissat", "External SAT solver binary")
	seedFlag   = flag.Uint64("seed", 0, "Master seed for solver RNG (0 = derive from time)")
	budgetFlag = flag.Duration("budget", 60*time.Second, "Wall-clock budget for solve's orchestrator race")
	versionF   = flag.Bool("version", false, "Print version and exit")
	help       = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("aedcli version %s\n", version)
		os.Exit(0)
	}
	if *help || flag.NArg() == 0 {
		printHelp()
		os.Exit(0)
	}

	if err := run(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	ctx := context.Background()
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "register":
		return runRegister(ctx, rest)
	case "select":
		return runSelect(ctx, rest)
	case "explore":
		return runExplore(ctx, rest)
	case "guess":
		return runGuess(ctx, rest)
	case "solve":
		return runSolve(ctx, rest)
	case "visualize":
		return runVisualize(rest)
	default:
		return fmt.Errorf("unknown subcommand %q", cmd)
	}
}

func client() *judge.Client {
	c := judge.NewClient(*judgeURL, 30*time.Second)
	if *idFlag != "" {
		c.SetID(*idFlag)
		return c
	}
	if data, err := os.ReadFile(*idFile); err == nil {
		c.SetID(string(data))
	}
	return c
}

func persistID(id string) error {
	return os.WriteFile(*idFile, []byte(id), 0644)
}

func runRegister(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: register <name> <pl> <email>")
	}
	c := judge.NewClient(*judgeURL, 30*time.Second)
	id, err := c.Register(ctx, args[0], args[1], args[2])
	if err != nil {
		return err
	}
	if err := persistID(id); err != nil {
		return fmt.Errorf("persisting id: %w", err)
	}
	fmt.Printf("registered id: %s\n", id)
	return nil
}

func runSelect(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: select <problem_name>")
	}
	c := client()
	problem, err := c.Select(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("selected: %s\n", problem)
	return nil
}

func runExplore(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: explore <plans...>")
	}
	c := client()
	result, err := c.Explore(ctx, args)
	if err != nil {
		return err
	}
	for i, labels := range result.Results {
		fmt.Printf("%s -> %v\n", args[i], labels)
	}
	fmt.Printf("queryCount: %d\n", result.QueryCount)
	return nil
}

func runGuess(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: guess <map.json>")
	}
	a, err := loadMap(args[0])
	if err != nil {
		return err
	}
	c := client()
	result, err := c.Guess(ctx, a)
	if err != nil {
		return err
	}
	if result.Correct {
		fmt.Println("correct")
		return nil
	}
	fmt.Printf("incorrect: %s\n", result.Reason)
	return nil
}

func runVisualize(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: visualize <map.json> <out.svg>")
	}
	a, err := loadMap(args[0])
	if err != nil {
		return err
	}
	opts := export.DefaultSVGOptions()
	opts.Title = fmt.Sprintf("Ædificium (%d rooms)", a.N())
	return export.SaveSVGToFile(a, args[1], opts)
}

func loadMap(path string) (*aedificium.Aedificium, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var a aedificium.Aedificium
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if err := a.Build(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	return &a, nil
}

// runSolve drives the end-to-end pipeline: select the problem, gather a
// baseline set of single-door observations, race satsolve against
// anneal/fingerprint (lifted through pkg/duplicate when the problem
// duplicates rooms), and submit the winner.
func runSolve(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: solve <problem_name>")
	}
	problemName := args[0]

	p, err := registry.Lookup(problemName)
	if err != nil {
		return err
	}

	c := client()
	if _, err := c.Select(ctx, problemName); err != nil {
		return fmt.Errorf("select: %w", err)
	}

	n := p.N()
	var plans []string
	for q := 0; q < aedificium.Doors; q++ {
		plans = append(plans, aedificium.FormatPlan([]aedificium.Token{{Kind: aedificium.TokenMove, Value: q}}))
	}
	exploreResult, err := c.Explore(ctx, plans)
	if err != nil {
		return fmt.Errorf("explore: %w", err)
	}

	var observations []satsolve.Observation
	for i, planText := range plans {
		tokens, err := aedificium.ParsePlan(planText)
		if err != nil {
			return fmt.Errorf("parsing probe plan: %w", err)
		}
		observations = append(observations, satsolve.Observation{Plan: tokens, Labels: exploreResult.Results[i]})
	}

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	// satsolve's CNF encoding models the Orig/cardinality/indistinguishability
	// constraints directly (satsolve.Problem.D), so it is sound at any
	// duplication factor and always races unmodified. anneal and
	// fingerprint have no notion of duplication at all: for d=1 that's
	// irrelevant and they race directly over the real room count, but for
	// d>1 they can only ever recover the k-room quotient graph, so each is
	// followed by a pkg/duplicate.Lift stage that issues its own
	// charcoal-probing queries to recover the full k*d-room layout before
	// the result is allowed to win the race.
	solvers := []orchestrator.Solver{
		{Name: "satsolve", Run: func(ctx context.Context) (*aedificium.Aedificium, error) {
			return satsolve.Solve(ctx, satsolve.NewExternalSolver(*satBinary), satsolve.Problem{
				K: p.K, D: p.D, Observations: observations, BreakStartSymmetry: true,
			})
		}},
	}

	if p.D == 1 {
		solvers = append(solvers,
			orchestrator.Solver{Name: "anneal", Run: func(ctx context.Context) (*aedificium.Aedificium, error) {
				graph, _, err := anneal.Solve(ctx, anneal.DefaultConfig(n), seed, observations)
				return graph, err
			}},
			orchestrator.Solver{Name: "fingerprint", Run: func(ctx context.Context) (*aedificium.Aedificium, error) {
				return fingerprint.Solve(ctx, fingerprint.DefaultConfig(n), seed, judge.MultiExplorer{Client: c})
			}},
		)
	} else {
		solvers = append(solvers,
			orchestrator.Solver{Name: "anneal+lift", Run: func(ctx context.Context) (*aedificium.Aedificium, error) {
				base, _, err := anneal.Solve(ctx, anneal.DefaultConfig(p.K), seed, observations)
				if err != nil {
					return nil, fmt.Errorf("anneal base: %w", err)
				}
				return duplicate.Lift(ctx, judge.MultiExplorer{Client: c}, base, p.D, duplicate.DefaultConfig(p.K), seed)
			}},
			orchestrator.Solver{Name: "fingerprint+lift", Run: func(ctx context.Context) (*aedificium.Aedificium, error) {
				base, err := fingerprint.Solve(ctx, fingerprint.DefaultConfig(p.K), seed, judge.MultiExplorer{Client: c})
				if err != nil {
					return nil, fmt.Errorf("fingerprint base: %w", err)
				}
				if base.N() != p.K {
					return nil, fmt.Errorf("fingerprint recovered %d base rooms, want %d", base.N(), p.K)
				}
				return duplicate.Lift(ctx, judge.MultiExplorer{Client: c}, base, p.D, duplicate.DefaultConfig(p.K), seed)
			}},
		)
	}

	result, err := orchestrator.Race(ctx, orchestrator.Config{Budget: *budgetFlag}, solvers)
	if err != nil {
		return fmt.Errorf("no solver converged: %w", err)
	}
	fmt.Printf("winner: %s\n", result.Name)

	guessResult, err := c.Guess(ctx, result.Graph)
	if err != nil {
		return fmt.Errorf("guess: %w", err)
	}
	if guessResult.Correct {
		fmt.Println("guess accepted")
		return nil
	}
	return fmt.Errorf("guess rejected: %s", guessResult.Reason)
}

func printHelp() {
	fmt.Printf("aedcli version %s\n\n", version)
	fmt.Println("Usage: aedcli [flags] <command> [args...]")
	fmt.Println("\nCommands:")
	fmt.Println("  register <name> <pl> <email>   register with the judge, persist the session id")
	fmt.Println("  select <problem_name>           start a session against a problem")
	fmt.Println("  explore <plans...>              submit route plans, print observed labels")
	fmt.Println("  guess <map.json>                submit a candidate layout")
	fmt.Println("  solve <problem_name>             run select/explore/reconstruct/guess end to end")
	fmt.Println("  visualize <map.json> <out.svg>  render a map to SVG")
	fmt.Println("\nFlags:")
	flag.PrintDefaults()
	fmt.Println("\nPlan tokens: digits 0-5 for MOVE, [0-3] for CHARCOAL, e.g. 012[1]345")
}
