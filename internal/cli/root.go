package cli

import (
	"github.com/kolah/humbler/internal/config"
	"github.com/spf13/cobra"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "humbler",
		Short: "Humbler - a flat catalog of every operation in an OpenAPI document",
		Long: `Humbler reads an OpenAPI 3.x document from a URL or a file and lists every
operation with its parameters, request body and response shapes, and a link
into Swagger UI.

Configuration is read from .humbler.yaml (or --config), .env, OPENAPI_JSON_URL,
SWAGGER_UI_URL and HUMBLER_* variables, and flags, in increasing precedence.`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	config.BindFlags(root)
	root.AddCommand(NewCatalogCmd(), NewServeCmd())

	return root
}
