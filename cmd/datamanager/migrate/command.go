package migrate

import (
	"github.com/spf13/cobra"

	"github.com/openkcm/selfservice-datamanager/internal/business"
	"github.com/openkcm/selfservice-datamanager/internal/cmdutils"
)

func Cmd(buildInfo string) *cobra.Command {
	return cmdutils.CobraCommand(
		"migrate",
		"Data Manager migrations",
		"Applies the database migrations of the postgres cache backend",
		buildInfo,
		cmdutils.RunAsJob,
		business.MigrateMain,
	)
}
