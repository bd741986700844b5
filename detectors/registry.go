// Package detectors is the concrete detector library (C8): one file per
// check, registered into a shared detect.Registry at init time, mirroring
// how the teacher's analysis/module/modules package registers into a
// ModuleLoader.
package detectors

import "go-tealer/detect"

// Default is the registry every built-in detector registers itself into.
// cmd/tealer passes it (plus whatever plugins were loaded) to detect.Registry.RunAll.
var Default = detect.NewRegistry()
