package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quotewall/internal/app"
	"github.com/jsamuelsen/quotewall/internal/domain"
)

var (
	quoteColor = color.New(color.FgGreen)
	memeColor  = color.New(color.FgCyan, color.Underline)
	warnColor  = color.New(color.FgYellow)
)

func newQuoteCmd(opts *rootOptions) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Print random quotes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.build(cmd)
			if err != nil {
				return err
			}

			quotes, err := svc.quotes.GetQuotes(cmd.Context(), count)
			if err != nil {
				return err
			}

			for _, q := range quotes {
				printQuote(cmd.OutOrStdout(), q.Text)
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, fmt.Sprintf("Number of quotes (1-%d)", app.MaxQuoteBatch))

	return cmd
}

func newMemeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "meme",
		Short: "Print the URL of the latest meme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.build(cmd)
			if err != nil {
				return err
			}

			meme, err := svc.memes.GetLatestMeme(cmd.Context())

			return printMeme(cmd.OutOrStdout(), meme, err)
		},
	}
}

func newWallCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "wall",
		Short: "Print a quote and the latest meme, fetched together",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.build(cmd)
			if err != nil {
				return err
			}

			quote, meme, err := app.Parallel2(cmd.Context(),
				svc.quotes.GetRandomQuote,
				func(ctx context.Context) (*domain.Meme, error) {
					m, err := svc.memes.GetLatestMeme(ctx)
					if domain.IsNotFound(err) {
						return nil, nil
					}

					return m, err
				},
			)
			if err != nil {
				return err
			}

			printQuote(cmd.OutOrStdout(), quote.Text)

			return printMeme(cmd.OutOrStdout(), meme, nil)
		},
	}
}

func printQuote(w io.Writer, text string) {
	_, _ = quoteColor.Fprintln(w, text)
}

// printMeme prints meme, or a notice when the feed was empty.
func printMeme(w io.Writer, meme *domain.Meme, err error) error {
	if domain.IsNotFound(err) || (err == nil && meme == nil) {
		_, _ = warnColor.Fprintln(w, "no meme available")
		return nil
	}

	if err != nil {
		return err
	}

	_, _ = memeColor.Fprintln(w, meme.URL)

	return nil
}
