package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/coreos/monorepo/internal/cli"
	"github.com/coreos/monorepo/internal/orchestrator"
)

var flags cli.Flags

var cmdRoot = &cobra.Command{
	Use:   "monorepo",
	Short: "Hermetic, content-addressed monorepository builder",
}

var cmdBuild = &cobra.Command{
	Use:   "build",
	Short: "Build the current codebase and its dependencies",
	Args:  cobra.NoArgs,
	RunE:  runBuild,
}

var cmdUpload = &cobra.Command{
	Use:   "upload",
	Short: "Build the current codebase, archive the prefix, and upload it",
	Args:  cobra.NoArgs,
	RunE:  runUpload,
}

func init() {
	log.SetOutput(os.Stdout)

	cli.AddCommonFlags(cmdBuild.Flags(), &flags)
	cli.AddCommonFlags(cmdUpload.Flags(), &flags)
	cmdUpload.Flags().StringVar(&flags.ArchiveName, "archive-name", "", "base name for the uploaded archive (default <codebase>-<timestamp>-<hash>)")

	cmdRoot.AddCommand(cmdBuild)
	cmdRoot.AddCommand(cmdUpload)
}

func main() {
	if err := cmdRoot.Execute(); err != nil {
		log.Fatal(err)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runBuild(cmd *cobra.Command, args []string) error {
	bctx, codeBaseName, cleanup, err := cli.BuildContext(flags)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := signalContext()
	defer cancel()

	if err := orchestrator.RunBuild(ctx, bctx, codeBaseName); err != nil {
		return err
	}

	log.WithFields(log.Fields{"codebase": codeBaseName, "summary": bctx.Metrics.Summary()}).Info("build complete")
	return nil
}

func runUpload(cmd *cobra.Command, args []string) error {
	bctx, codeBaseName, cleanup, err := cli.BuildContext(flags)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := signalContext()
	defer cancel()

	if err := orchestrator.RunUpload(ctx, bctx, codeBaseName, flags.ArchiveName); err != nil {
		return err
	}

	log.WithFields(log.Fields{"codebase": codeBaseName, "summary": bctx.Metrics.Summary()}).Info("upload complete")
	return nil
}
