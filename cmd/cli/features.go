package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ressKim-io/CerviGuard/internal/domain/entity"
	"github.com/ressKim-io/CerviGuard/internal/usecase"
)

func newFeaturesCmd(v *viper.Viper) *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "features",
		Short: "Print the questions a backend expects, in model order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			backends, err := listBackends(cmd.Context(), v)
			if err != nil {
				return err
			}

			want := entity.ParseBackendID(backend)
			printed := 0
			for _, b := range backends {
				if want != "" && entity.BackendID(b.Backend) != want {
					continue
				}
				printFeatures(cmd.OutOrStdout(), b, want == "")
				printed++
			}
			if printed == 0 {
				return fmt.Errorf("%w: %q", usecase.ErrUnknownBackend, backend)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&backend, "backend", "b", "", "backend id (svm or dt); all backends when empty")
	return cmd
}

func listBackends(ctx context.Context, v *viper.Viper) ([]*usecase.BackendOutput, error) {
	if c := remoteClient(v); c != nil {
		infos, err := c.Backends(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]*usecase.BackendOutput, 0, len(infos))
		for _, info := range infos {
			out = append(out, &usecase.BackendOutput{
				Backend:  info.Backend,
				Model:    info.Model,
				Features: info.Features,
				Scaled:   info.Scaled,
			})
		}
		return out, nil
	}

	uc, err := loadLocal(ctx, v)
	if err != nil {
		return nil, err
	}
	return uc.Backends(ctx), nil
}

func printFeatures(w io.Writer, b *usecase.BackendOutput, withHeader bool) {
	if withHeader {
		fmt.Fprintf(w, "%s (%s):\n", b.Model, b.Backend)
	}
	for i, f := range b.Features {
		fmt.Fprintf(w, "%2d. %s\n", i+1, f)
	}
}
