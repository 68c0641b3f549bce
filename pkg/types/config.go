// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "radar/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the dataset fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// URL is the location of the raw incident CSV export.
	URL string `json:"url" yaml:"url"`

	// Filename is the name the download is stored under inside DataDir.
	Filename string `json:"filename" yaml:"filename"`

	// DataDir is the directory dataset files live in.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxRetries is the retry budget for rate-limited requests.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ConvertConfig holds settings for the coordinate conversion stage.
type ConvertConfig struct {
	// SourceEPSG is the EPSG code of the projected system the input file
	// uses (default 2269, NAD83 / Oregon North in feet).
	SourceEPSG int `json:"source_epsg" yaml:"source_epsg"`

	// TargetEPSG is the EPSG code of the geographic output system
	// (4326, WGS84).
	TargetEPSG int `json:"target_epsg" yaml:"target_epsg"`

	// DataDir is the directory dataset files live in. Input and output
	// paths are resolved against it, never against the working directory.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// XColumn and YColumn are the zero-based indexes of the projected
	// coordinate columns. Both zero means the standard export layout,
	// columns 8 and 9.
	XColumn int `json:"x_column" yaml:"x_column"`
	YColumn int `json:"y_column" yaml:"y_column"`
}

// StoreConfig holds settings for the SQLite incident store.
type StoreConfig struct {
	// DataDir is the directory dataset files live in.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// DBFile is the database filename inside DataDir.
	DBFile string `json:"db_file" yaml:"db_file"`

	// MaxResults is the default cap on query results (default 100).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ServerConfig holds settings for the crimes-near HTTP server.
type ServerConfig struct {
	// Port is the TCP port the server listens on.
	Port int `json:"port" yaml:"port"`

	// DataDir is the directory dataset files live in.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// File is the converted dataset filename inside DataDir.
	File string `json:"file" yaml:"file"`
}
