package cmd

import (
	"fmt"
	"sort"

	"member-api/core/config"
	"member-api/core/database"
	"member-api/core/logger"
	memberModels "member-api/feature/member/models"
	skillModels "member-api/feature/skills/models"
	statsModels "member-api/feature/statistics/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verifyFlag bool

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long:  `Runs GORM auto-migration for every model. With --verify the schema is only inspected and missing columns are reported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		models := allModels()
		if verifyFlag {
			missing, err := database.MissingColumns(db, models...)
			if err != nil {
				return err
			}
			if len(missing) == 0 {
				logg.Info("Schema is up to date", zap.Int("models", len(models)))
				return nil
			}
			tables := make([]string, 0, len(missing))
			for table := range missing {
				tables = append(tables, table)
			}
			sort.Strings(tables)
			for _, table := range tables {
				logg.Warn("Table is missing columns", zap.String("table", table), zap.Strings("columns", missing[table]))
			}
			return fmt.Errorf("%d tables are missing columns", len(tables))
		}

		if err := db.AutoMigrate(models...); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
		logg.Info("Schema migrated", zap.Int("models", len(models)))
		return nil
	},
}

func allModels() []any {
	models := memberModels.All()
	models = append(models, statsModels.All()...)
	return append(models, skillModels.All()...)
}

func init() {
	migrateCmd.Flags().BoolVar(&verifyFlag, "verify", false, "Only report columns missing from the live schema")
	RootCmd.AddCommand(migrateCmd)
}
