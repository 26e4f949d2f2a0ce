/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package log

import (
	"bytes"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogTestSuite struct {
	suite.Suite
	originalLogLevel string
}

func TestLogSuite(t *testing.T) {
	suite.Run(t, new(LogTestSuite))
}

func (suite *LogTestSuite) SetupTest() {
	suite.originalLogLevel = os.Getenv(LogLevelEnvironmentVariable)
}

func (suite *LogTestSuite) TearDownTest() {
	err := os.Setenv(LogLevelEnvironmentVariable, suite.originalLogLevel)
	if err != nil {
		suite.T().Errorf("Failed to restore environment variable: %v", err)
	}

	logger = nil
	once = sync.Once{}
}

// newBufferLogger builds a logger that writes JSON entries into the given buffer.
func newBufferLogger(buf *bytes.Buffer, level zapcore.Level) *Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(buf), level)
	return &Logger{internal: zap.New(core)}
}

func (suite *LogTestSuite) TestInitLoggerWithEnvironmentVariable() {
	testCases := []struct {
		name     string
		logLevel string
		isValid  bool
	}{
		{"DefaultLevel", "", true},
		{"DebugLevel", "debug", true},
		{"InfoLevel", "INFO", true},
		{"WarnLevel", "warn", true},
		{"ErrorLevel", "error", true},
		{"InvalidLevel", "unknown", false},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			logger = nil
			once = sync.Once{}

			if tc.logLevel != "" {
				assert.NoError(t, os.Setenv(LogLevelEnvironmentVariable, tc.logLevel))
			} else {
				assert.NoError(t, os.Unsetenv(LogLevelEnvironmentVariable))
			}

			if tc.isValid {
				assert.NotPanics(t, func() {
					_ = GetLogger()
				})
			} else {
				assert.Panics(t, func() {
					_ = GetLogger()
				})
			}
		})
	}
}

func (suite *LogTestSuite) TestParseLogLevel() {
	testCases := []struct {
		name      string
		logLevel  string
		expected  zapcore.Level
		expectErr bool
	}{
		{"Debug", "debug", zapcore.DebugLevel, false},
		{"Info", "info", zapcore.InfoLevel, false},
		{"Warn", "warn", zapcore.WarnLevel, false},
		{"Error", "error", zapcore.ErrorLevel, false},
		{"Invalid", "invalid", zapcore.ErrorLevel, true},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			level, err := parseLogLevel(tc.logLevel)
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expected, level)
		})
	}
}

func (suite *LogTestSuite) TestLogMethods() {
	var buf bytes.Buffer
	log := newBufferLogger(&buf, zapcore.DebugLevel)

	log.Debug("Debug message", String("test", "debug"))
	log.Info("Info message", Int("count", 3))
	log.Warn("Warning message", Bool("flag", true))
	log.Error("Error message", Error(errors.New("boom")))

	output := buf.String()
	assert.Contains(suite.T(), output, "Debug message")
	assert.Contains(suite.T(), output, "Info message")
	assert.Contains(suite.T(), output, "Warning message")
	assert.Contains(suite.T(), output, "Error message")

	assert.Contains(suite.T(), output, `"test":"debug"`)
	assert.Contains(suite.T(), output, `"count":3`)
	assert.Contains(suite.T(), output, `"flag":true`)
	assert.Contains(suite.T(), output, `"error":"boom"`)
}

func (suite *LogTestSuite) TestLoggerWith() {
	var buf bytes.Buffer
	log := newBufferLogger(&buf, zapcore.DebugLevel)

	contextLogger := log.With(String(LoggerKeyComponentName, "LogoutCoordinator"))
	assert.NotNil(suite.T(), contextLogger)

	contextLogger.Info("Context log message")

	output := buf.String()
	assert.Contains(suite.T(), output, `"component":"LogoutCoordinator"`)
	assert.Contains(suite.T(), output, "Context log message")
}

func (suite *LogTestSuite) TestIsDebugEnabled() {
	var buf bytes.Buffer
	assert.True(suite.T(), newBufferLogger(&buf, zapcore.DebugLevel).IsDebugEnabled())
	assert.False(suite.T(), newBufferLogger(&buf, zapcore.InfoLevel).IsDebugEnabled())
}

func (suite *LogTestSuite) TestMaskString() {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"Empty", "", ""},
		{"Short", "ab", "**"},
		{"ThreeChars", "abc", "***"},
		{"Normal", "password", "p******d"},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, MaskString(tc.input))
		})
	}
}

func (suite *LogTestSuite) TestConvertFields() {
	fields := []Field{
		String("string", "value"),
		Int("int", 42),
		Error(errors.New("failure")),
	}

	zapFields := convertFields(fields)
	assert.Len(suite.T(), zapFields, 3)
	assert.Equal(suite.T(), "string", zapFields[0].Key)
	assert.Equal(suite.T(), "error", zapFields[2].Key)
	assert.Equal(suite.T(), zapcore.ErrorType, zapFields[2].Type)
}
