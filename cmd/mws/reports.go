package main

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/gurre/mws/response"
	"github.com/gurre/mws/sections"
)

// newReportsCmd drives the report round trip: request, poll the list,
// download.
func newReportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Request, list and download reports",
	}
	cmd.AddCommand(newReportsRequestCmd())
	cmd.AddCommand(newReportsListCmd())
	cmd.AddCommand(newReportsGetCmd())
	return cmd
}

func newReportsRequestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "request <report-type>",
		Short: "Request generation of a report (aliases like 'orders' accepted)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := newClient(ctx)
			if err != nil {
				return err
			}
			res, err := sections.NewReports(c).RequestReport(ctx, args[0], time.Time{}, time.Time{}, nil, nil)
			if err != nil {
				return err
			}
			return printParsed(res)
		},
	}
}

func newReportsListCmd() *cobra.Command {
	var nextToken string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reports available for download",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := newClient(ctx)
			if err != nil {
				return err
			}
			reports := sections.NewReports(c)
			var res *response.Response
			if nextToken != "" {
				res, err = reports.GetReportListByNextToken(ctx, nextToken)
			} else {
				res, err = reports.GetReportList(ctx, nil, nil, nil, 0, time.Time{}, time.Time{})
			}
			if err != nil {
				return err
			}
			return printParsed(res)
		},
	}
	cmd.Flags().StringVar(&nextToken, "next-token", "", "continue a previous listing")
	return cmd
}

func newReportsGetCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "get <report-id>",
		Short: "Download a report to stdout, a file, or s3://bucket/key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := newClient(ctx)
			if err != nil {
				return err
			}
			res, err := sections.NewReports(c).GetReport(ctx, args[0])
			if err != nil {
				return err
			}
			switch {
			case output == "":
				fmt.Print(res.Text())
				return nil
			case strings.HasPrefix(output, "s3://"):
				return uploadToS3(ctx, output, res.Original)
			default:
				return os.WriteFile(output, res.Original, 0o644)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination path or s3://bucket/key")
	return cmd
}

// uploadToS3 stores the report body at an s3://bucket/key destination.
func uploadToS3(ctx context.Context, destination string, body []byte) error {
	u, err := url.Parse(destination)
	if err != nil || u.Scheme != "s3" || u.Host == "" || len(u.Path) < 2 {
		return fmt.Errorf("invalid S3 destination %q, expected s3://bucket/key", destination)
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}
	_, err = s3.NewFromConfig(awsCfg).PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(u.Host),
		Key:    aws.String(strings.TrimPrefix(u.Path, "/")),
		Body:   bytes.NewReader(body),
	})
	if err != nil {
		return fmt.Errorf("failed to upload report to %s: %w", destination, err)
	}
	log.WithField("destination", destination).Info("report uploaded")
	return nil
}
