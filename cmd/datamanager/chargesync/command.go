package chargesync

import (
	"github.com/spf13/cobra"

	"github.com/openkcm/selfservice-datamanager/internal/business"
	"github.com/openkcm/selfservice-datamanager/internal/cmdutils"
)

func Cmd(buildInfo string) *cobra.Command {
	return cmdutils.CobraCommand(
		"charge-sync",
		"Data Manager charge sync job",
		"Data Manager charge sync job periodically mirrors the charges of the signed in client into the local store",
		buildInfo,
		cmdutils.RunAsService,
		business.ChargeSyncMain,
	)
}
