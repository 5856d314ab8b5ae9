package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"concise/concise"
)

var log = logrus.New()

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "concise-cli",
		Short: "Build and combine CONCISE compressed integer sets from the command line",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newUnionCmd(), newIntersectCmd(), newDifferenceCmd(), newReplCmd())
	return root
}

func parseIntList(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	fields := strings.Split(raw, ",")
	values := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", f, err)
		}
		values = append(values, v)
	}
	return values, nil
}

func setFromFlag(raw string) (*concise.Set, error) {
	values, err := parseIntList(raw)
	if err != nil {
		return nil, err
	}
	return concise.FromInts(values)
}

func newUnionCmd() *cobra.Command {
	var aRaw, bRaw string
	cmd := &cobra.Command{
		Use:   "union",
		Short: "Print the union of two comma-separated integer lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlgebra(aRaw, bRaw, func(a, b *concise.Set) *concise.Set { return a.Union(b) })
		},
	}
	cmd.Flags().StringVar(&aRaw, "a", "", "comma-separated integers for the first set")
	cmd.Flags().StringVar(&bRaw, "b", "", "comma-separated integers for the second set")
	return cmd
}

func newIntersectCmd() *cobra.Command {
	var aRaw, bRaw string
	cmd := &cobra.Command{
		Use:   "intersect",
		Short: "Print the intersection of two comma-separated integer lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlgebra(aRaw, bRaw, func(a, b *concise.Set) *concise.Set { return a.Intersection(b) })
		},
	}
	cmd.Flags().StringVar(&aRaw, "a", "", "comma-separated integers for the first set")
	cmd.Flags().StringVar(&bRaw, "b", "", "comma-separated integers for the second set")
	return cmd
}

func newDifferenceCmd() *cobra.Command {
	var aRaw, bRaw string
	cmd := &cobra.Command{
		Use:   "difference",
		Short: "Print the difference (a - b) of two comma-separated integer lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlgebra(aRaw, bRaw, func(a, b *concise.Set) *concise.Set { return a.Difference(b) })
		},
	}
	cmd.Flags().StringVar(&aRaw, "a", "", "comma-separated integers for the first set")
	cmd.Flags().StringVar(&bRaw, "b", "", "comma-separated integers for the second set")
	return cmd
}

func runAlgebra(aRaw, bRaw string, combine func(a, b *concise.Set) *concise.Set) error {
	a, err := setFromFlag(aRaw)
	if err != nil {
		return err
	}
	b, err := setFromFlag(bRaw)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"a_size": a.Size(), "b_size": b.Size()}).Debug("combining sets")
	result := combine(a, b)
	fmt.Println(formatSlice(result.ToSlice()))
	return nil
}

func formatSlice(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session for building up a set",
		RunE: func(cmd *cobra.Command, args []string) error {
			runREPL()
			return nil
		},
	}
}

// runREPL hosts one Set per session, mutated by add/remove/fill/clear/show
// commands typed at the prompt.
func runREPL() {
	s := concise.New()

	fmt.Println("concise-cli - interactive CONCISE set session")
	fmt.Println("commands: add <n> | remove <n> | fill <from> <to> | clear <from> <to> | show | size | exit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])

		switch cmd {
		case "add":
			if len(parts) != 2 {
				fmt.Println("usage: add <n>")
				continue
			}
			n, err := strconv.Atoi(parts[1])
			if err != nil {
				fmt.Println("add: n must be an integer")
				continue
			}
			added, err := s.Add(n)
			if err != nil {
				fmt.Printf("add error: %v\n", err)
				continue
			}
			fmt.Println(added)
		case "remove":
			if len(parts) != 2 {
				fmt.Println("usage: remove <n>")
				continue
			}
			n, err := strconv.Atoi(parts[1])
			if err != nil {
				fmt.Println("remove: n must be an integer")
				continue
			}
			removed, err := s.Remove(n)
			if err != nil {
				fmt.Printf("remove error: %v\n", err)
				continue
			}
			fmt.Println(removed)
		case "fill":
			if len(parts) != 3 {
				fmt.Println("usage: fill <from> <to>")
				continue
			}
			from, err1 := strconv.Atoi(parts[1])
			to, err2 := strconv.Atoi(parts[2])
			if err1 != nil || err2 != nil {
				fmt.Println("fill: from/to must be integers")
				continue
			}
			if err := s.Fill(from, to); err != nil {
				fmt.Printf("fill error: %v\n", err)
				continue
			}
			fmt.Println("ok")
		case "clear":
			if len(parts) != 3 {
				fmt.Println("usage: clear <from> <to>")
				continue
			}
			from, err1 := strconv.Atoi(parts[1])
			to, err2 := strconv.Atoi(parts[2])
			if err1 != nil || err2 != nil {
				fmt.Println("clear: from/to must be integers")
				continue
			}
			if err := s.Clear(from, to); err != nil {
				fmt.Printf("clear error: %v\n", err)
				continue
			}
			fmt.Println("ok")
		case "show":
			fmt.Println(formatSlice(s.ToSlice()))
		case "size":
			fmt.Println(s.Size())
		case "exit", "quit":
			return
		default:
			fmt.Println("unknown command")
		}
	}

	if err := scanner.Err(); err != nil {
		log.WithError(err).Error("input error")
	}
}
