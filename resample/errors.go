// SPDX-License-Identifier: EPL-2.0

package resample

import "errors"

// ErrConfig is returned for invalid rates, ratios or block parameters.
var ErrConfig = errors.New("invalid resampler configuration")
