package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	bucketOwner     string
	bucketExclusive bool
	bucketAUID      uint64
	bucketAttrs     []string
)

// bucketCmd groups bucket operations.
var bucketCmd = &cobra.Command{
	Use:   "bucket",
	Short: "Create buckets and read their records",
}

var bucketCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a bucket",
	Long: `Creates a bucket. Names starting with '.' are system buckets backed by a
pool of the same name; every other bucket is bound to an available pool.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		attrs, err := parseAttrs(bucketAttrs)
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		bucket, err := a.buckets.CreateBucket(cmd.Context(), bucketOwner, args[0], attrs, bucketExclusive, bucketAUID)
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", args[0], err)
		}

		a.logger.Info("Bucket created",
			zap.String("bucket", bucket.Name),
			zap.String("pool", bucket.Pool),
			zap.Uint64("bucket_id", bucket.BucketID))
		return printJSON(bucket)
	},
}

var bucketInfoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show the stored record of a bucket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		info, err := a.buckets.GetBucketInfo(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(info)
	},
}

var bucketInfoIDCmd = &cobra.Command{
	Use:   "info-id <id>",
	Short: "Show the stored record of a bucket by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid bucket id %q: %w", args[0], err)
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		info, err := a.buckets.GetBucketInfoByID(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(info)
	},
}

func init() {
	RootCmd.AddCommand(bucketCmd)
	bucketCmd.AddCommand(bucketCreateCmd, bucketInfoCmd, bucketInfoIDCmd)

	bucketCreateCmd.Flags().StringVar(&bucketOwner, "owner", "", "Owning user id")
	bucketCreateCmd.Flags().BoolVar(&bucketExclusive, "exclusive", true, "Fail if the bucket already exists")
	bucketCreateCmd.Flags().Uint64Var(&bucketAUID, "auid", 0, "Default auid of the bucket")
	bucketCreateCmd.Flags().StringArrayVar(&bucketAttrs, "attr", nil, "Bucket attribute as key=value (repeatable)")
	_ = bucketCreateCmd.MarkFlagRequired("owner")
}

// parseAttrs turns key=value pairs into an attribute map.
func parseAttrs(pairs []string) (map[string][]byte, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	attrs := make(map[string][]byte, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid attribute %q, expected key=value", p)
		}
		attrs[k] = []byte(v)
	}
	return attrs, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
