// Package telemetry ships bot usage metrics to Google Cloud Monitoring.
// Everything here is best-effort: a misconfigured or failing backend
// degrades to a disabled client and never blocks command handling.
package telemetry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	monitoring "cloud.google.com/go/monitoring/apiv3"
	"google.golang.org/genproto/googleapis/api/metric"
	"google.golang.org/genproto/googleapis/api/monitoredres"
	monitoringpb "google.golang.org/genproto/googleapis/monitoring/v3"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/ellielalafontaine/trackmaniabottime/constants"
	"github.com/ellielalafontaine/trackmaniabottime/utils"
)

// MetricsClient wraps the Google Cloud Monitoring client.
type MetricsClient struct {
	client    *monitoring.MetricClient
	projectID string
	enabled   bool
}

// NewMetricsClient creates a new MetricsClient. A missing project ID or
// failed credential setup yields a disabled client.
func NewMetricsClient(projectID string) *MetricsClient {
	if projectID == "" {
		utils.Warn("Project ID not provided, telemetry disabled")
		return &MetricsClient{enabled: false}
	}

	if err := setupGoogleCloudCredentials(); err != nil {
		utils.Warn("Failed to setup Google Cloud credentials: %v", err)
		utils.Warn("Telemetry disabled - ensure Firebase credentials are available")
		return &MetricsClient{enabled: false}
	}

	client, err := monitoring.NewMetricClient(context.Background())
	if err != nil {
		utils.Warn("Failed to create monitoring client: %v", err)
		utils.Warn("Telemetry disabled")
		return &MetricsClient{enabled: false}
	}

	utils.Info("Google Cloud Monitoring telemetry enabled for project: %s", projectID)
	return &MetricsClient{
		client:    client,
		projectID: projectID,
		enabled:   true,
	}
}

// SendCommandMetric records one command invocation.
func (m *MetricsClient) SendCommandMetric(command string, isAdmin bool) {
	if !m.enabled {
		return
	}

	ctx := context.Background()
	now := &timestamppb.Timestamp{
		Seconds: time.Now().Unix(),
	}

	if err := m.sendLabeledMetric(ctx, "trackmania_bot/commands/usage", 1.0, now, map[string]string{
		"command":  command,
		"is_admin": fmt.Sprintf("%t", isAdmin),
	}); err != nil {
		utils.Warn("Failed to send command metric: %v", err)
		return
	}

	utils.Debug("Command metric sent: %s (admin: %t)", command, isAdmin)
}

// SendSubmissionMetric records one accepted time submission.
func (m *MetricsClient) SendSubmissionMetric(mapNum int) {
	if !m.enabled {
		return
	}

	ctx := context.Background()
	now := &timestamppb.Timestamp{
		Seconds: time.Now().Unix(),
	}

	if err := m.sendLabeledMetric(ctx, "trackmania_bot/submissions/count", 1.0, now, map[string]string{
		"map": fmt.Sprintf("%d", mapNum),
	}); err != nil {
		utils.Warn("Failed to send submission metric: %v", err)
		return
	}

	utils.Debug("Submission metric sent for map %d", mapNum)
}

// SendWeekResetMetric records a weekly rollover with the surviving player
// count.
func (m *MetricsClient) SendWeekResetMetric(playerCount int) {
	if !m.enabled {
		return
	}

	ctx := context.Background()
	now := &timestamppb.Timestamp{
		Seconds: time.Now().Unix(),
	}

	if err := m.sendCustomMetric(ctx, "trackmania_bot/weeks/resets", 1.0, now); err != nil {
		utils.Warn("Failed to send week reset metric: %v", err)
	}

	if err := m.sendCustomMetric(ctx, "trackmania_bot/players/registered", float64(playerCount), now); err != nil {
		utils.Warn("Failed to send player count metric: %v", err)
	}

	utils.Debug("Week reset metric sent (players: %d)", playerCount)
}

// sendCustomMetric sends a plain custom metric.
func (m *MetricsClient) sendCustomMetric(ctx context.Context, metricType string, value float64, timestamp *timestamppb.Timestamp) error {
	return m.sendLabeledMetric(ctx, metricType, value, timestamp, nil)
}

// sendLabeledMetric sends a custom metric with labels.
func (m *MetricsClient) sendLabeledMetric(ctx context.Context, metricType string, value float64, timestamp *timestamppb.Timestamp, labels map[string]string) error {
	if labels == nil {
		labels = make(map[string]string)
	}

	req := &monitoringpb.CreateTimeSeriesRequest{
		Name: fmt.Sprintf("projects/%s", m.projectID),
		TimeSeries: []*monitoringpb.TimeSeries{
			{
				Metric: &metric.Metric{
					Type:   fmt.Sprintf("custom.googleapis.com/%s", metricType),
					Labels: labels,
				},
				Resource: &monitoredres.MonitoredResource{
					Type: "generic_task",
					Labels: map[string]string{
						"project_id": m.projectID,
						"location":   "global",
						"namespace":  constants.TelemetryNamespace,
						"job":        constants.TelemetryJobName,
						"task_id":    constants.TelemetryTaskID,
					},
				},
				Points: []*monitoringpb.Point{
					{
						Interval: &monitoringpb.TimeInterval{
							EndTime: timestamp,
						},
						Value: &monitoringpb.TypedValue{
							Value: &monitoringpb.TypedValue_DoubleValue{
								DoubleValue: value,
							},
						},
					},
				},
			},
		},
	}

	return m.client.CreateTimeSeries(ctx, req)
}

// Close releases the monitoring client.
func (m *MetricsClient) Close() error {
	if !m.enabled || m.client == nil {
		return nil
	}
	return m.client.Close()
}

// setupGoogleCloudCredentials materializes the Firebase credential JSON as a
// file for Google Cloud client authentication.
func setupGoogleCloudCredentials() error {
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" {
		return nil
	}

	firebaseCredentials := os.Getenv(constants.EnvFirebaseCreds)
	if firebaseCredentials == "" {
		return fmt.Errorf("neither GOOGLE_APPLICATION_CREDENTIALS nor %s is set", constants.EnvFirebaseCreds)
	}

	credFile := filepath.Join(os.TempDir(), constants.TelemetryCredentialsFile)
	if err := os.WriteFile(credFile, []byte(firebaseCredentials), constants.TelemetryFilePermissions); err != nil {
		return fmt.Errorf("failed to write temporary credentials file: %v", err)
	}

	os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", credFile)

	utils.Debug("Created temporary Google Cloud credentials file: %s", credFile)
	return nil
}
