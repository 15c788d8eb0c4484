package e2e

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"intake/e2e/steps/submission"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	ctx.Before(func(c context.Context, _ *godog.Scenario) (context.Context, error) {
		tc.Reset()
		return c, nil
	})

	// Generic assertions
	ctx.Step(`^the response status should be (\d+)$`, func(code int) error {
		if tc.StatusCode() != code {
			return fmt.Errorf("expected status %d, got %d", code, tc.StatusCode())
		}
		return nil
	})

	submission.RegisterSteps(ctx, tc)
}
