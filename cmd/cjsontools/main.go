// Command cjsontools runs the transformation engine from the shell: one
// operation per invocation, input from a file argument or stdin, output
// to stdout.
//
// Usage:
//
//	cjsontools [flags] <op> [file]
//
// Operations:
//
//	flatten | schema | pathtypes | remove-nulls | remove-empty
//	replace-keys <pattern> <replacement> | replace-values <pattern> <replacement>
//	flatten-batch <file...>
//
// Flags:
//
//	-pretty    2-space-indent the output
//	-threads   allow the batch path to use the worker pool (multi-file runs)
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	cjsontools "github.com/cjson-tools/cjsontools"
)

var (
	pretty  = flag.Bool("pretty", false, "pretty-print output")
	threads = flag.Bool("threads", true, "allow multi-file runs to use the worker pool")
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, usage())
		os.Exit(2)
	}

	op := args[0]
	rest := args[1:]

	if err := run(op, rest); err != nil {
		log.Fatal(fmtError("run", op, err))
	}
}

func run(op string, rest []string) error {
	switch op {
	case "flatten", "schema", "pathtypes", "remove-nulls", "remove-empty":
		return runSingleFileOp(op, rest)
	case "replace-keys", "replace-values":
		return runPatternOp(op, rest)
	case "flatten-batch":
		return runFlattenBatch(rest)
	default:
		return fmt.Errorf("unknown operation %q", op)
	}
}

// runFlattenBatch flattens each listed file independently via
// FlattenBatch, which uses the worker pool only for batches over its
// count and size thresholds (never with -threads=false), printing one
// newline-delimited JSON result per input, in input order.
func runFlattenBatch(files []string) error {
	if len(files) == 0 {
		return fmt.Errorf("flatten-batch requires one or more files")
	}
	inputs := make([][]byte, len(files))
	for i, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return err
		}
		inputs[i] = data
	}
	results, err := cjsontools.FlattenBatch(inputs,
		cjsontools.WithBatchPretty(*pretty),
		cjsontools.WithThreads(*threads),
	)
	if err != nil {
		return err
	}
	for i, r := range results {
		if r.Err != nil {
			fmt.Fprintln(os.Stderr, fmtError("flatten-batch", files[i], r.Err))
			continue
		}
		os.Stdout.Write(r.Output)
		os.Stdout.Write([]byte("\n"))
	}
	return nil
}

func runSingleFileOp(op string, rest []string) error {
	input, err := readInput(rest)
	if err != nil {
		return err
	}
	out, err := applySingleFileOp(op, input)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

func applySingleFileOp(op string, input []byte) ([]byte, error) {
	opt := cjsontools.WithPretty(*pretty)
	switch op {
	case "flatten":
		return cjsontools.Flatten(input, opt)
	case "schema":
		return cjsontools.GenerateSchema(input, opt)
	case "pathtypes":
		return cjsontools.PathTypes(input, opt)
	case "remove-nulls":
		return cjsontools.RemoveNulls(input, opt)
	case "remove-empty":
		return cjsontools.RemoveEmptyStrings(input, opt)
	default:
		return nil, fmt.Errorf("unknown operation %q", op)
	}
}

func runPatternOp(op string, rest []string) error {
	if len(rest) < 2 {
		return fmt.Errorf("%s requires <pattern> <replacement> [file]", op)
	}
	pattern, replacement := rest[0], rest[1]
	input, err := readInput(rest[2:])
	if err != nil {
		return err
	}
	opt := cjsontools.WithPretty(*pretty)
	var out []byte
	switch op {
	case "replace-keys":
		out, err = cjsontools.ReplaceKeys(input, pattern, replacement, opt)
	case "replace-values":
		out, err = cjsontools.ReplaceValues(input, pattern, replacement, opt)
	}
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

func readInput(fileArgs []string) ([]byte, error) {
	if len(fileArgs) == 0 {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(fileArgs[0])
}

func fmtError(op, subOp string, err error) string {
	return replace("cjsontools: {op}/{subop} failed: {err}", map[string]interface{}{
		"op": op, "subop": subOp, "err": err,
	})
}

func usage() string {
	return "usage: cjsontools [-pretty] [-threads] <flatten|schema|pathtypes|remove-nulls|remove-empty|replace-keys|replace-values|flatten-batch> [args] [file...]"
}

func replace(template string, params map[string]interface{}) string {
	out := template
	for key, value := range params {
		out = strings.ReplaceAll(out, "{"+key+"}", fmt.Sprint(value))
	}
	return out
}
