// Package main es la CLI de operación: propuesta de reposición interactiva,
// conteos físicos, alta de usuarios y migración del esquema.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/bootstrap"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/inventory"
	"github.com/jhoicas/Reposicion-api/pkg/config"
	"github.com/jhoicas/Reposicion-api/pkg/logger"
)

const appName = "reposicion"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	logLevel string
	lang     string
}

func rootCmd() *cobra.Command {
	g := &globalFlags{}
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Operación de reposición de inventario",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "Nivel de log (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&g.lang, "lang", "es", "Idioma para formato de montos (es, en)")

	cmd.AddCommand(planCmd(g), countCmd(g), seedUserCmd(g), migrateCmd(g))
	return cmd
}

// withApp carga configuración, arma dependencias y ejecuta fn con una consola sobre stdin/stdout.
func withApp(cmd *cobra.Command, g *globalFlags, fn func(ctx context.Context, c *console) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: g.logLevel, Output: cmd.ErrOrStderr()})

	ctx := cmd.Context()
	app, err := bootstrap.Build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	tag, err := language.Parse(g.lang)
	if err != nil {
		return fmt.Errorf("--lang %q: %w", g.lang, err)
	}
	return fn(ctx, newConsole(app, cmd.InOrStdin(), cmd.OutOrStdout(), tag))
}

func planCmd(g *globalFlags) *cobra.Command {
	var (
		vendor, itemType, date string
		yes                    bool
	)
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Propone reposición bajo par y crea una orden por proveedor",
		Long: `Lista los artículos bajo nivel par con la cantidad propuesta y pregunta
por cada línea si se pide (s/N). Con --yes acepta todas sin preguntar.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, g, func(ctx context.Context, c *console) error {
				return c.plan(ctx, inventory.Filter{Vendor: vendor, Type: itemType}, date, yes)
			})
		},
	}
	cmd.Flags().StringVar(&vendor, "vendor", "", "Filtrar por proveedor (precedencia sobre --type)")
	cmd.Flags().StringVar(&itemType, "type", "", "Filtrar por tipo de artículo")
	cmd.Flags().StringVar(&date, "date", time.Now().AddDate(0, 0, 1).Format(entity.DateLayout), "Fecha esperada de entrega (YYYY-MM-DD)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Aceptar todas las líneas")
	return cmd
}

func countCmd(g *globalFlags) *cobra.Command {
	var vendor string
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Registra el conteo físico de los artículos de un proveedor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, g, func(ctx context.Context, c *console) error {
				return c.count(ctx, vendor)
			})
		},
	}
	cmd.Flags().StringVar(&vendor, "vendor", "", "Proveedor (requerido)")
	_ = cmd.MarkFlagRequired("vendor")
	return cmd
}

func seedUserCmd(g *globalFlags) *cobra.Command {
	var in dto.RegisterRequest
	cmd := &cobra.Command{
		Use:   "seed-user",
		Short: "Crea un operador (útil para el primer admin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, g, func(ctx context.Context, c *console) error {
				u, err := c.app.AuthUC.RegisterUser(ctx, in)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.out, "usuario %s creado (%s, rol %s)\n", u.Email, u.ID, u.Role)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "Email")
	cmd.Flags().StringVar(&in.Password, "password", "", "Contraseña (mínimo 8 caracteres)")
	cmd.Flags().StringVar(&in.Name, "name", "", "Nombre")
	cmd.Flags().StringVar(&in.Role, "role", entity.RoleAdmin, "Rol: admin, comprador o bodeguero")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func migrateCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica el esquema en PostgreSQL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			if cfg.App.StoreDriver != config.StoreDriverPostgres {
				fmt.Fprintf(cmd.OutOrStdout(), "STORE_DRIVER=%s: nada que migrar\n", cfg.App.StoreDriver)
				return nil
			}
			_, closeStores, err := bootstrap.OpenStores(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			closeStores()
			fmt.Fprintln(cmd.OutOrStdout(), "esquema aplicado")
			return nil
		},
	}
}
