package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fchapoton/dalgebra/system"
)

var resultantCmd = &cobra.Command{
	Use:   "resultant [system.txt]",
	Short: "eliminates the main variables of a system and prints the resultant",
	Args:  cobra.ExactArgs(1),
	RunE:  cmdResultant,
}

var (
	fAlgorithm    string
	fBound        int
	fSylvesterOut string
)

func init() {
	rootCmd.AddCommand(resultantCmd)
	resultantCmd.Flags().StringVar(&fAlgorithm, "algorithm", "auto", "elimination algorithm: auto, iterative, macaulay or dixon")
	resultantCmd.Flags().IntVar(&fBound, "bound", 10, "bound on the extension search per equation")
	resultantCmd.Flags().StringVar(&fSylvesterOut, "sylvester-out", "", "write the final sylvester matrix to this file, sparse CSV")
}

func cmdResultant(cmd *cobra.Command, args []string) error {
	f, err := os.Open(filepath.Clean(args[0]))
	if err != nil {
		return err
	}
	defer f.Close()

	s, err := readSystem(f)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	alg, err := parseAlgorithm(fAlgorithm)
	if err != nil {
		return err
	}
	opts := []system.ResultantOption{
		system.WithAlgorithm(alg),
		system.WithBound(fBound),
	}
	if fSylvesterOut != "" {
		sink, err := os.Create(filepath.Clean(fSylvesterOut))
		if err != nil {
			return err
		}
		defer sink.Close()
		opts = append(opts, system.WithMatrixSink(sink))
	}

	res, err := s.Resultant(opts...)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), res)
	return nil
}

func parseAlgorithm(name string) (system.Algorithm, error) {
	switch name {
	case "auto":
		return system.AlgorithmAuto, nil
	case "iterative":
		return system.AlgorithmIterative, nil
	case "macaulay":
		return system.AlgorithmMacaulay, nil
	case "dixon":
		return system.AlgorithmDixon, nil
	}
	return system.AlgorithmAuto, fmt.Errorf("unknown algorithm %q", name)
}
