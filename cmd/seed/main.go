package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/auth"
	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/config"
	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/db"
	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/logger"
	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/service"
)

const (
	demoEmail    = "demo@linkleaf.com"
	demoPassword = "password123"
)

var reset bool

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the database with a demo account",
	Long: `Creates the demo user, the default coloured tags and a set of demo contacts.

Configuration is read from the same LINKLEAF_* environment variables as the server.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().BoolVar(&reset, "reset", false, "delete all users, contacts and tags first")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	var s *seeder
	app := fx.New(
		fx.NopLogger,
		config.Module,
		logger.Module,
		db.Module,
		auth.Module,
		service.Module,
		fx.Provide(newSeeder),
		fx.Populate(&s),
	)
	if err := app.Err(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := app.Start(ctx); err != nil {
		return errors.Wrap(err, "start app")
	}
	defer func() {
		_ = app.Stop(context.Background())
	}()

	return s.run(ctx, reset)
}

type seeder struct {
	db       *gorm.DB
	general  *service.General
	contacts *service.Contacts
	tags     *service.Tags
	logger   *zap.SugaredLogger
}

func newSeeder(gdb *gorm.DB, general *service.General, contacts *service.Contacts, tags *service.Tags, l *zap.SugaredLogger) *seeder {
	return &seeder{
		db:       gdb,
		general:  general,
		contacts: contacts,
		tags:     tags,
		logger:   l,
	}
}

func (s *seeder) run(ctx context.Context, reset bool) error {
	if reset {
		if err := s.clear(ctx); err != nil {
			return err
		}
	}

	user, _, err := s.general.Register(ctx, demoEmail, demoPassword, "Demo", "User")
	if errors.Is(err, service.ErrEmailTaken) {
		s.logger.Infow("demo user already exists, run with --reset to recreate it", "email", demoEmail)
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "create demo user")
	}
	res := s.db.WithContext(ctx).Model(&db.User{}).Where("id = ?", user.ID).UpdateColumn("is_verified", true)
	if res.Error != nil {
		return errors.Wrap(res.Error, "verify demo user")
	}

	for _, tag := range demoTags {
		color := tag.color
		if _, err := s.tags.Create(ctx, user.ID, tag.name, &color, nil); err != nil && !errors.Is(err, service.ErrTagExists) {
			return errors.Wrapf(err, "create tag %s", tag.name)
		}
	}

	for _, c := range demoContacts {
		if _, err := s.contacts.Create(ctx, user.ID, c.fields(), c.tags); err != nil {
			return errors.Wrapf(err, "create contact %s", c.name)
		}
	}

	s.logger.Infow("database seeded",
		"email", demoEmail,
		"password", demoPassword,
		"user_id", user.ID,
		"contacts", len(demoContacts),
		"tags", len(demoTags),
	)
	return nil
}

// clear empties every table; links first, users last.
func (s *seeder) clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"contact_tags", "contacts", "tags", "users"} {
			sql, args, err := squirrel.Delete(table).ToSql()
			if err != nil {
				return errors.Wrap(err, "build sql")
			}
			if res := tx.Exec(sql, args...); res.Error != nil {
				return errors.Wrapf(res.Error, "clear %s", table)
			}
		}
		s.logger.Info("existing data cleared")
		return nil
	})
}
