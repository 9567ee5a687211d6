package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-intake/internal/merge"
	"github.com/jonathan/candidate-intake/internal/types"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [primary.json] [secondary.json]",
	Short: "Merge two candidate record JSON files",
	Long:  "Merge two candidate records into one. Primary fields win; contact fields prefer the secondary (document) source unless --keep-primary-contacts is set.",
	Args:  cobra.ExactArgs(2),
	RunE:  runMerge,
}

var mergeKeepPrimaryContacts bool

func init() {
	mergeCmd.Flags().BoolVar(&mergeKeepPrimaryContacts, "keep-primary-contacts", false, "Take contact fields from the primary record instead of the secondary")

	rootCmd.AddCommand(mergeCmd)
}

func runMerge(_ *cobra.Command, args []string) error {
	primary, err := readRecordFile(args[0])
	if err != nil {
		return err
	}
	secondary, err := readRecordFile(args[1])
	if err != nil {
		return err
	}

	policy := merge.DefaultPolicy()
	if mergeKeepPrimaryContacts {
		policy.ContactSource = merge.Primary
	}
	merged := merge.MergeWithPolicy(primary, secondary, policy)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(merged)
}

func readRecordFile(path string) (types.CandidateRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.CandidateRecord{}, fmt.Errorf("failed to read record file %s: %w", path, err)
	}

	record := types.NewCandidateRecord()
	if err := json.Unmarshal(data, &record); err != nil {
		return types.CandidateRecord{}, fmt.Errorf("failed to parse record JSON in %s: %w", path, err)
	}
	return record, nil
}
