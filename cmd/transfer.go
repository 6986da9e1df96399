package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var overwrite bool

var cmdUpload = &cobra.Command{
	Use:   "upload LOCAL_FILE REMOTE_DIR",
	Short: "Upload a file into a remote folder, creating the missing folders",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		action, err := session.UploadFile(cmd.Context(), args[0], args[1], overwrite)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), action)
		return nil
	},
}

var cmdPut = &cobra.Command{
	Use:   "put LOCAL_FILE REMOTE_FILE",
	Short: "Upload a file as a new remote file with the given path",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		return session.UploadFileTo(cmd.Context(), args[0], args[1])
	},
}

var cmdDownload = &cobra.Command{
	Use:   "download REMOTE_FILE LOCAL_DIR",
	Short: "Download a remote file into a local dir",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		localPath, err := session.DownloadFile(cmd.Context(), args[1], args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), localPath)
		return nil
	},
}

func init() {
	cmdUpload.Flags().BoolVarP(&overwrite, "overwrite", "o", true, "Overwrite the remote file if it exists")
	rootCmd.AddCommand(cmdUpload, cmdPut, cmdDownload)
}
