package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/spf13/cobra"

	"github.com/ledgerlab/powchain/ledger"
)

func main() {
	// Ctrl-C cancels an in-flight proof-of-work search instead of
	// killing the process mid-render.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var difficulty uint

	cmd := &cobra.Command{
		Use:          "powchain",
		Short:        "Run the proof-of-work ledger demonstration",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), difficulty)
		},
	}
	cmd.Flags().UintVar(&difficulty, "difficulty", ledger.DefaultDifficulty,
		"leading zero hex characters required of a mined digest")

	return cmd
}

func runDemo(ctx context.Context, difficulty uint) error {
	// Create a new slog handler with the default PTerm logger
	handler := pterm.NewSlogHandler(&pterm.DefaultLogger)
	logger := slog.New(handler)

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("PoW", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("Chain", pterm.FgDarkGray.ToStyle()),
	).Render()

	bc := ledger.NewBlockchain(difficulty)

	pterm.DefaultSection.Println("Initial blockchain")
	printChain(bc)

	bc.AddRecord("Alice pays Bob 5 BTC")
	bc.AddRecord("Bob pays Charlie 3 BTC")
	if err := mine(ctx, bc, logger); err != nil {
		return err
	}
	pterm.DefaultSection.Println("Blockchain after mining first block")
	printChain(bc)

	bc.AddRecord("Charlie pays Dave 1 BTC")
	bc.AddRecord("Dave pays Eve 0.5 BTC")
	if err := mine(ctx, bc, logger); err != nil {
		return err
	}
	pterm.DefaultSection.Println("Blockchain after mining second block")
	printChain(bc)

	pterm.DefaultSection.Println("Blockchain validation")
	reportValidation(bc)

	pterm.DefaultSection.Println("Tampering with the blockchain")
	if err := bc.Tamper(1, "Hacker gives themselves 1000 BTC"); err != nil {
		return err
	}
	logger.Warn("appended a forged record to block 1 without resealing it")

	pterm.DefaultSection.Println("Blockchain validation after tampering")
	reportValidation(bc)

	return nil
}

func mine(ctx context.Context, bc *ledger.Blockchain, logger *slog.Logger) error {
	next := bc.Length()
	spinner, _ := pterm.DefaultSpinner.Start(pterm.Sprintf("Mining block %d ...", next))

	result, err := bc.MinePending(ctx)
	if err != nil {
		spinner.Fail()
		return err
	}
	if !result.Mined {
		spinner.Warning("No records to mine")
		return nil
	}

	spinner.Success(pterm.Sprintf("Block %d mined in %.2f seconds", result.BlockIndex, result.Elapsed.Seconds()))
	logger.Info("proof-of-work found", "block", result.BlockIndex, "nonce", result.Nonce)

	return nil
}

func reportValidation(bc *ledger.Blockchain) {
	if err := bc.Verify(); err != nil {
		pterm.Error.Printfln("Blockchain is invalid: %v", err)
		return
	}
	pterm.Success.Println("Blockchain is valid")
}
