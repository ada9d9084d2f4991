package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"credit-calc/domain"
	"credit-calc/logger"
	"credit-calc/report"
	"credit-calc/service"
)

// runCalculation performs a single calculation from the command line flags
// and prints the report. Incorrect parameters are reported on stdout and are
// not an error.
func runCalculation(c *cli.Context, stdout io.Writer) error {
	if !c.IsSet(typeFlag.Name) {
		return fmt.Errorf("flag --%s is required", typeFlag.Name)
	}
	if !c.IsSet(interestFlag.Name) {
		return fmt.Errorf("flag --%s is required", interestFlag.Name)
	}
	strategy, err := domain.ParseStrategy(c.String(typeFlag.Name))
	if err != nil {
		return err
	}

	params := domain.NewLoanParameters(
		float64(c.Int(principalFlag.Name)),
		float64(c.Int(paymentFlag.Name)),
		c.Float64(interestFlag.Name),
		c.Int(periodsFlag.Name),
	)
	mode := service.Classify(params, strategy)
	logger.Debug("calculating",
		zap.String("strategy", string(strategy)),
		zap.String("mode", string(mode)),
		zap.Any("parameters", params),
	)

	result, err := service.Calculate(params, strategy)
	if errors.Is(err, service.ErrInvalidCalculation) {
		logger.Warn("calculation failed", zap.Error(err))
		return err
	}
	if err != nil {
		return err
	}

	return report.Write(stdout, result)
}
