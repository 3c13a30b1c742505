package commands

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vibedit/vibedit-orders-service/internal/config"
	"github.com/vibedit/vibedit-orders-service/internal/metrics"
	"github.com/vibedit/vibedit-orders-service/internal/models"
	"github.com/vibedit/vibedit-orders-service/internal/report"
	"github.com/vibedit/vibedit-orders-service/internal/repository"
	"github.com/vibedit/vibedit-orders-service/internal/service"
)

func exportCmd() *cobra.Command {
	var (
		out    string
		status string
		search string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export orders to an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := models.OrderListFilter{Search: search}
			if status != "" {
				s, ok := models.ParseOrderStatus(status)
				if !ok {
					return fmt.Errorf("unknown order status %q", status)
				}
				filter.Status = &s
			}

			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := repository.OpenPostgres(cmd.Context(), cfg.Database, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			orderService := service.NewOrderService(
				repository.NewPostgresOrderRepository(db, logger),
				nil,
				nil,
				metrics.New(prometheus.NewRegistry()),
				config.FeatureFlags{},
				logger,
			)

			orders, err := orderService.ListAllOrders(cmd.Context(), filter)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			defer f.Close()

			if err := report.WriteOrdersWorkbook(f, orders); err != nil {
				return err
			}

			logger.Info("Orders exported", zap.String("file", out), zap.Int("orders", len(orders)))
			return f.Close()
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "orders.xlsx", "output file")
	cmd.Flags().StringVar(&status, "status", "", "only export orders in this status")
	cmd.Flags().StringVar(&search, "search", "", "only export orders whose title or ID matches")

	return cmd
}
