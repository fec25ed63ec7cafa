package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagParams []string
	flagData   string
	flagJSON   bool
	flagOutput string
)

var getCmd = &cobra.Command{
	Use:   "get <url>",
	Short: "Issue a GET request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		resp, err := client.Get(cmd.Context(), args[0], parseParams(flagParams))
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

var postCmd = &cobra.Command{
	Use:   "post <url>",
	Short: "Issue a POST request (multipart form by default)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		data, err := parseData(flagData)
		if err != nil {
			return err
		}
		post := client.Post
		if flagJSON {
			post = client.PostJSON
		}
		resp, err := post(cmd.Context(), args[0], data)
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

var putCmd = &cobra.Command{
	Use:   "put <url>",
	Short: "Issue a PUT request with a JSON body",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		data, err := parseData(flagData)
		if err != nil {
			return err
		}
		resp, err := client.Put(cmd.Context(), args[0], data)
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <url>",
	Short: "Issue a DELETE request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		data, err := parseData(flagData)
		if err != nil {
			return err
		}
		resp, err := client.Delete(cmd.Context(), args[0], parseParams(flagParams), data)
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download <url>",
	Short: "POST a form and stream the response to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagOutput == "" {
			return fmt.Errorf("--output is required")
		}
		client, err := buildClient()
		if err != nil {
			return err
		}
		data, err := parseData(flagData)
		if err != nil {
			return err
		}
		if err := client.Download(cmd.Context(), args[0], data, flagOutput); err != nil {
			return err
		}
		fmt.Printf("saved to %s\n", flagOutput)
		return nil
	},
}

func init() {
	getCmd.Flags().StringArrayVarP(&flagParams, "param", "p", nil, "query parameter, name=value (repeatable)")
	deleteCmd.Flags().StringArrayVarP(&flagParams, "param", "p", nil, "query parameter, name=value (repeatable)")

	for _, cmd := range []*cobra.Command{postCmd, putCmd, deleteCmd, downloadCmd} {
		cmd.Flags().StringVarP(&flagData, "data", "d", "", "JSON payload")
	}
	postCmd.Flags().BoolVar(&flagJSON, "json", false, "send the body as JSON instead of multipart form")
	downloadCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output file path")

	rootCmd.AddCommand(getCmd, postCmd, putCmd, deleteCmd, downloadCmd)
}
