package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "roomsignal",
	Short: "Сигнальный сервер консультаций: offer/answer и ICE кандидаты по HTTP",
	Long: `roomsignal хранит комнаты в памяти и передает между врачом и пациентом
SDP offer/answer и ICE кандидатов. Настройки читаются из окружения.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		runApp(cmd.Context())
	},
}

func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cancel()
		rootCmd.PrintErrln(err)
		os.Exit(1)
	}
}
