package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/keyforge/keyforge-go/internal/generator"
	"github.com/keyforge/keyforge-go/internal/wordlist"
)

var (
	genLength        int
	genNoUppercase   bool
	genNoLowercase   bool
	genNoNumbers     bool
	genNoSymbols     bool
	genNoAmbiguous   bool
	genNoSimilar     bool
	genPronounceable bool

	phraseWords     int
	phraseSeparator string
)

func init() {
	generateCmd.Flags().IntVarP(&genLength, "length", "l", 16, "password length")
	generateCmd.Flags().BoolVar(&genNoUppercase, "no-uppercase", false, "exclude uppercase letters")
	generateCmd.Flags().BoolVar(&genNoLowercase, "no-lowercase", false, "exclude lowercase letters")
	generateCmd.Flags().BoolVar(&genNoNumbers, "no-numbers", false, "exclude digits")
	generateCmd.Flags().BoolVar(&genNoSymbols, "no-symbols", false, "exclude symbols")
	generateCmd.Flags().BoolVar(&genNoAmbiguous, "no-ambiguous", false, "exclude ambiguous glyphs (iI1LoO0)")
	generateCmd.Flags().BoolVar(&genNoSimilar, "no-similar", false, "exclude visually similar glyphs")
	generateCmd.Flags().BoolVar(&genPronounceable, "pronounceable", false, "alternate consonants and vowels")
	rootCmd.AddCommand(generateCmd)

	passphraseCmd.Flags().IntVarP(&phraseWords, "words", "w", 6, "number of words")
	passphraseCmd.Flags().StringVarP(&phraseSeparator, "separator", "s", " ", "word separator")
	rootCmd.AddCommand(passphraseCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random password",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := generator.Options{
			Length:           genLength,
			Uppercase:        !genNoUppercase,
			Lowercase:        !genNoLowercase,
			Numbers:          !genNoNumbers,
			Symbols:          !genNoSymbols,
			ExcludeAmbiguous: genNoAmbiguous,
			ExcludeSimilar:   genNoSimilar,
			Pronounceable:    genPronounceable,
		}

		password, err := generator.Generate(opts)
		if err != nil {
			return err
		}

		fmt.Println(password)
		bits := generator.Entropy(opts.Length, generator.PoolSize(opts))
		fmt.Println(color.CyanString("→") + fmt.Sprintf(" ~%d bits of entropy", bits))
		return nil
	},
}

var passphraseCmd = &cobra.Command{
	Use:   "passphrase",
	Short: "Generate a wordlist passphrase",
	RunE: func(cmd *cobra.Command, args []string) error {
		passphrase, err := generator.GeneratePassphrase(phraseWords, phraseSeparator)
		if err != nil {
			return err
		}

		fmt.Println(passphrase)
		bits := generator.Entropy(phraseWords, wordlist.Size())
		fmt.Println(color.CyanString("→") + fmt.Sprintf(" ~%d bits of entropy", bits))
		return nil
	},
}
