package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ressKim-io/CerviGuard/internal/domain/entity"
	"github.com/ressKim-io/CerviGuard/internal/usecase"
)

func newPredictCmd(v *viper.Viper) *cobra.Command {
	var (
		backend     string
		answersJSON string
		answersFile string
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Run a prediction for one set of answers",
		Example: `  cerviguard predict --backend dt --answers '{"Smokes": 0, "Dx:HPV": 1, ...}'
  cerviguard predict --backend svm --answers-file answers.json --server http://localhost:8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			answers, err := readAnswers(answersJSON, answersFile)
			if err != nil {
				return err
			}

			output, err := runPredict(cmd.Context(), v, entity.ParseBackendID(backend), answers)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(output)
		},
	}

	cmd.Flags().StringVarP(&backend, "backend", "b", string(entity.BackendSVM), "backend id (svm or dt)")
	cmd.Flags().StringVar(&answersJSON, "answers", "", "answers as a JSON object")
	cmd.Flags().StringVar(&answersFile, "answers-file", "", "path to a JSON file with the answers")
	cmd.MarkFlagsMutuallyExclusive("answers", "answers-file")
	cmd.MarkFlagsOneRequired("answers", "answers-file")
	return cmd
}

func readAnswers(answersJSON, answersFile string) (entity.Answers, error) {
	data := []byte(answersJSON)
	if answersFile != "" {
		var err error
		data, err = os.ReadFile(answersFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read answers file: %w", err)
		}
	}

	var answers entity.Answers
	if err := json.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("answers must be a JSON object: %w", err)
	}
	if answers == nil {
		return nil, errors.New("answers must be a JSON object")
	}
	return answers, nil
}

func runPredict(ctx context.Context, v *viper.Viper, backend entity.BackendID, answers entity.Answers) (*usecase.PredictionOutput, error) {
	if c := remoteClient(v); c != nil {
		result, err := c.Predict(ctx, string(backend), answers)
		if err != nil {
			return nil, err
		}
		return &usecase.PredictionOutput{
			Backend:    result.Backend,
			Model:      result.Model,
			Prediction: result.Prediction,
		}, nil
	}

	uc, err := loadLocal(ctx, v)
	if err != nil {
		return nil, err
	}
	return uc.Predict(ctx, backend, answers)
}
