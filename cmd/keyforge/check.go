package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/keyforge/keyforge-go/internal/breach"
	"github.com/keyforge/keyforge-go/internal/strength"
)

var (
	checkBreachFlag bool
	checkUserInputs []string
)

func init() {
	checkCmd.Flags().BoolVarP(&checkBreachFlag, "breach", "b", false, "also query the breach range service")
	checkCmd.Flags().StringSliceVarP(&checkUserInputs, "user-input", "u", nil, "strings to treat as guessable (username, site name)")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check <password>",
	Short: "Score a password's strength and optionally its breach exposure",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		candidate := args[0]

		result := strength.Check(candidate, checkUserInputs...)
		if checkBreachFlag {
			checker := breach.NewChecker()
			result = strength.ApplyBreach(result, checker.Check(cmd.Context(), candidate))
		}

		fmt.Println(scoreLabel(result))
		if result.CrackTimeDisplay != "" {
			fmt.Println("Estimated crack time: " + result.CrackTimeDisplay)
		}
		if result.Warning != "" {
			fmt.Println(color.YellowString("! ") + result.Warning)
		}
		for _, s := range result.Suggestions {
			fmt.Println(color.CyanString("→ ") + s)
		}
		return nil
	},
}

func scoreLabel(r strength.Result) string {
	if r.Breached {
		return color.RedString("✗") + " Breached (0/4)"
	}
	switch r.Score {
	case 0, 1:
		return color.RedString("✗") + fmt.Sprintf(" Weak (%d/4)", r.Score)
	case 2:
		return color.YellowString("~") + " Fair (2/4)"
	case 3:
		return color.GreenString("✓") + " Good (3/4)"
	default:
		return color.GreenString("✓") + " Strong (4/4)"
	}
}
