// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package codec

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type EnvVarCodecTestSuite struct {
	suite.Suite
	codec EnvVarCodec
}

func (s *EnvVarCodecTestSuite) SetupTest() {
	s.codec = EnvVarCodec{}
}

func TestEnvVarCodecTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(EnvVarCodecTestSuite))
}

func (s *EnvVarCodecTestSuite) TestDecode_Simple() {
	var v map[string]any
	s.Require().NoError(s.codec.Decode([]byte("ENVIRONMENT=development\nSERVICE=quantdash"), &v))
	s.Equal("development", v["environment"])
	s.Equal("quantdash", v["service"])
}

func (s *EnvVarCodecTestSuite) TestDecode_Nested() {
	var v map[string]any
	s.Require().NoError(s.codec.Decode([]byte("HISTORY_MODE=hash\nHISTORY_BASE=/app\nLOG_LEVEL=debug"), &v))

	h, ok := v["history"].(map[string]any)
	s.Require().True(ok)
	s.Equal("hash", h["mode"])
	s.Equal("/app", h["base"])

	l, ok := v["log"].(map[string]any)
	s.Require().True(ok)
	s.Equal("debug", l["level"])
}

func (s *EnvVarCodecTestSuite) TestDecode_SkipsMalformed() {
	var v map[string]any
	s.Require().NoError(s.codec.Decode([]byte("NOEQUALS\n=value\n___=x\n KEY = spaced "), &v))
	s.Equal(map[string]any{"key": "spaced"}, v)
}

func (s *EnvVarCodecTestSuite) TestDecode_ScalarReplacedByNested() {
	var v map[string]any
	s.Require().NoError(s.codec.Decode([]byte("HISTORY=x\nHISTORY_MODE=hash"), &v))
	s.Equal(map[string]any{"history": map[string]any{"mode": "hash"}}, v)
}

func (s *EnvVarCodecTestSuite) TestDecode_ValueMayContainEquals() {
	var v map[string]any
	s.Require().NoError(s.codec.Decode([]byte("TOKEN=a=b"), &v))
	s.Equal("a=b", v["token"])
}

func (s *EnvVarCodecTestSuite) TestDecode_WrongTarget() {
	var v map[string]string
	s.Error(s.codec.Decode([]byte("A=b"), &v))
}

func (s *EnvVarCodecTestSuite) TestEncode_Unsupported() {
	_, err := s.codec.Encode(map[string]any{})
	s.Error(err)
}
