package apiserver

import (
	"github.com/spf13/cobra"

	"github.com/openkcm/selfservice-datamanager/internal/business"
	"github.com/openkcm/selfservice-datamanager/internal/cmdutils"
)

func Cmd(buildInfo string) *cobra.Command {
	return cmdutils.CobraCommand(
		"api-server",
		"Data Manager API server",
		"Data Manager API server hosts the public http data API and a private gRPC health API",
		buildInfo,
		cmdutils.RunAsService,
		business.Main,
	)
}
