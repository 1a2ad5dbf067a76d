package main

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ressKim-io/CerviGuard/internal/adapter/client"
	"github.com/ressKim-io/CerviGuard/internal/infrastructure/artifact"
	"github.com/ressKim-io/CerviGuard/internal/infrastructure/config"
	"github.com/ressKim-io/CerviGuard/internal/usecase"
)

const clientTimeout = 10 * time.Second

// newRootCmd builds the command tree. Flags also read CERVIGUARD_* env vars.
func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CERVIGUARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "cerviguard",
		Short:         "Cervical cancer risk screening models",
		Long:          `cerviguard inspects the trained screening models and runs predictions, either locally from the model artifacts or against a running API server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("server", "", "API server URL; models are loaded locally when empty")
	flags.String("models-source", config.SourceFile, "artifact source: file, s3 or gcs")
	flags.String("models-dir", "model_store", "artifact directory for the file source")
	flags.String("models-bucket", "", "artifact bucket for s3 and gcs sources")
	flags.String("models-prefix", "", "object prefix inside the bucket")
	flags.String("models-region", "", "bucket region for the s3 source")

	_ = v.BindPFlag("server", flags.Lookup("server"))
	_ = v.BindPFlag("models.source", flags.Lookup("models-source"))
	_ = v.BindPFlag("models.dir", flags.Lookup("models-dir"))
	_ = v.BindPFlag("models.bucket", flags.Lookup("models-bucket"))
	_ = v.BindPFlag("models.prefix", flags.Lookup("models-prefix"))
	_ = v.BindPFlag("models.region", flags.Lookup("models-region"))

	root.AddCommand(newFeaturesCmd(v))
	root.AddCommand(newPredictCmd(v))
	return root
}

func modelsConfig(v *viper.Viper) *config.ModelsConfig {
	return &config.ModelsConfig{
		Source: v.GetString("models.source"),
		Dir:    v.GetString("models.dir"),
		Bucket: v.GetString("models.bucket"),
		Prefix: v.GetString("models.prefix"),
		Region: v.GetString("models.region"),
	}
}

func remoteClient(v *viper.Viper) *client.PredictionClient {
	server := v.GetString("server")
	if server == "" {
		return nil
	}
	return client.NewPredictionClient(server, clientTimeout)
}

// loadLocal loads both bundles from the configured artifact source
func loadLocal(ctx context.Context, v *viper.Viper) (usecase.PredictionUsecase, error) {
	src, err := artifact.NewSource(ctx, modelsConfig(v))
	if err != nil {
		return nil, err
	}
	if closer, ok := src.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	bundles, err := artifact.NewLoader(src, zap.NewNop()).LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewPredictionUsecase(bundles...), nil
}
