package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure. Defaults describe the credit-score
// dataset this tool was built around; every field can be overridden via
// config file, CREDITPREP_* env vars, or command flags.
type Global struct {
	// Type inference samples this many leading rows. 6000 chosen
	// empirically: malformed numeric tokens further down the raw export
	// otherwise skew automatic type detection.
	SampleRows int `mapstructure:"sample_rows" yaml:"sample_rows"`

	// Categorical label encoding
	LabelColumn     string   `mapstructure:"label_column" yaml:"label_column"`
	Categories      []string `mapstructure:"categories" yaml:"categories"`
	IndicatorFormat string   `mapstructure:"indicator_format" yaml:"indicator_format"`

	// Columns removed as personally identifying or otherwise unneeded
	RedactColumns []string `mapstructure:"redact_columns" yaml:"redact_columns"`

	// Columns numeric in meaning but stored as text in the raw export
	NumericColumns []string `mapstructure:"numeric_columns" yaml:"numeric_columns"`

	// Low-correlation columns whose nulls get median imputation
	ImputeColumns []string `mapstructure:"impute_columns" yaml:"impute_columns"`

	// Heatmap rendering
	HeatmapTitle  string `mapstructure:"heatmap_title" yaml:"heatmap_title"`
	HeatmapWidth  int    `mapstructure:"heatmap_width" yaml:"heatmap_width"`
	HeatmapHeight int    `mapstructure:"heatmap_height" yaml:"heatmap_height"`

	// Default directory for pipeline run artifacts
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.creditprep/config.yaml, creating the directory
// if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".creditprep")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (applied by the caller) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("CREDITPREP")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("sample_rows", 6000)
	v.SetDefault("label_column", "Credit_Score")
	v.SetDefault("categories", []string{"Good", "Standard", "Poor"})
	v.SetDefault("indicator_format", "Is_%s_Credit")
	v.SetDefault("redact_columns", []string{"ID", "Customer_ID", "Name", "SSN"})
	v.SetDefault("numeric_columns", []string{
		"Age",
		"Annual_Income",
		"Num_of_Loan",
		"Num_of_Delayed_Payment",
		"Changed_Credit_Limit",
		"Outstanding_Debt",
		"Amount_invested_monthly",
		"Monthly_Balance",
	})
	v.SetDefault("impute_columns", []string{
		"Monthly_Inhand_Salary",
		"Num_Credit_Inquiries",
		"Amount_invested_monthly",
	})
	v.SetDefault("heatmap_title", "Credit score feature correlations")
	v.SetDefault("heatmap_width", 1000)
	v.SetDefault("heatmap_height", 1000)
	v.SetDefault("output_dir", "creditprep-out")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".creditprep")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
