// Copyright 2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bump

import "errors"

// ErrOutOfMemory is returned by Alloc when the requested allocation would
// not fit in the remaining space of the arena's buffer.
//
// This is a recoverable condition: the arena's state is left unchanged, and
// the caller may retry with a smaller request, release outstanding
// allocations, or fall back to another allocator.
var ErrOutOfMemory = errors.New("bump: arena out of memory")
