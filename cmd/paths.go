package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/svetlyi/gdrivepath/contracts"
)

var cmdCheck = &cobra.Command{
	Use:   "check PATH",
	Short: "Check if a remote path exists",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		exists, err := session.CheckExistence(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), exists)
		return nil
	},
}

var cmdMkdir = &cobra.Command{
	Use:   "mkdir PATH",
	Short: "Create all the missing folders of a remote path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		return session.CreateFoldersFromPath(cmd.Context(), args[0])
	},
}

var cmdList = &cobra.Command{
	Use:     "ls [PARENT_ID]",
	Short:   "List the children of a remote folder",
	Aliases: []string{"l"},
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		parentID := contracts.RootID
		if len(args) == 1 {
			parentID = args[0]
		}
		list, err := session.GetFileList(cmd.Context(), parentID)
		if err != nil {
			return err
		}
		for _, o := range list {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", o.ID, kind(o), o.Name)
		}
		return nil
	},
}

var cmdTree = &cobra.Command{
	Use:   "tree [PARENT_ID]",
	Short: "Print the remote tree under a folder",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		parentID := contracts.RootID
		if len(args) == 1 {
			parentID = args[0]
		}
		return session.Tree(cmd.Context(), parentID, func(path string, o contracts.RemoteObject) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", o.ID, kind(o), path)
			return err
		})
	},
}

func kind(o contracts.RemoteObject) string {
	if o.IsFolder() {
		return "folder"
	}
	return "file"
}

func init() {
	rootCmd.AddCommand(cmdCheck, cmdMkdir, cmdList, cmdTree)
}
