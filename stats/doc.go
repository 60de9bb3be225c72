// Copyright 2025 trimstats Authors
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

// Package stats computes the statistics that drive automated alignment
// trimming: pairwise sequence identity, per-column divergence weighted by
// a substitution matrix, masked sequence similarity, and per-sequence
// overlap (spurious) scores.
//
// Three engines consume an align.Alignment view through a vec.Kernel
// injected at construction:
//
//   - Similarity: pairwise identity matrix and the per-column divergence
//     vector derived from it and a simmat.Matrix.
//   - SeqIdentity: pairwise similarity respecting a per-column skip mask.
//   - Spurious: per-sequence overlap scores.
//
// Each engine instance owns the vectors and matrices it produces and is
// not safe for concurrent calls on the same instance; distinct instances
// are independent. All results are deterministic functions of the inputs
// and identical across kernels.
package stats
