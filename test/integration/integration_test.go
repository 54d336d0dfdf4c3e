package integration

import (
	"context"
	"os"
	"testing"

	"github.com/cucumber/godog"

	"github.com/doodlesbykumbi/grid-in-go/pkg/config"
)

func runFeatures(t *testing.T, driver string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tc, err := NewTestContext(ctx, driver)
	if err != nil {
		t.Fatalf("Failed to create test context: %v", err)
	}
	defer tc.Close(ctx)

	suite := godog.TestSuite{
		ScenarioInitializer: func(sc *godog.ScenarioContext) {
			steps := NewStepsContext(tc)
			steps.RegisterSteps(sc)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("Non-zero status returned, failed to run feature tests")
	}
}

func TestFeaturesSQLite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping feature tests in short mode.")
	}
	runFeatures(t, config.DriverSQLite)
}

func TestFeaturesPostgres(t *testing.T) {
	// Skip if not running integration tests
	if os.Getenv("INTEGRATION_TEST") == "" {
		t.Skip("Skipping postgres integration tests. Set INTEGRATION_TEST=1 to run.")
	}
	runFeatures(t, config.DriverPostgres)
}
