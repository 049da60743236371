package glgpu

import (
	"slices"
	"strconv"
	"strings"

	"github.com/gogpu/gpucontext"
)

// parseVersion extracts the major and minor numbers from a GL_VERSION
// string such as "4.6.0 NVIDIA 535.54" or "OpenGL ES 3.2 Mesa 23.1".
func parseVersion(s string) (major, minor int, ok bool) {
	for _, field := range strings.Fields(s) {
		parts := strings.SplitN(field, ".", 3)
		if len(parts) < 2 {
			continue
		}
		maj, err1 := strconv.Atoi(parts[0])
		mn, err2 := strconv.Atoi(parts[1])
		if err1 == nil && err2 == nil {
			return maj, mn, true
		}
	}
	return 0, 0, false
}

// softwareRenderers are GL_RENDERER substrings of CPU rasterizers.
var softwareRenderers = []string{"llvmpipe", "softpipe", "swiftshader", "swrast", "software", "gdi generic"}

// integratedVendors are GL_VENDOR or GL_RENDERER substrings of integrated
// GPUs.
var integratedVendors = []string{"intel", "apple", "mali", "adreno", "powervr", "videocore"}

// adapterType guesses the adapter type from the GL_VENDOR and GL_RENDERER
// strings, which is all a GL context exposes.
func adapterType(vendor, renderer string) gpucontext.AdapterType {
	v := strings.ToLower(vendor + " " + renderer)
	for _, s := range softwareRenderers {
		if strings.Contains(v, s) {
			return gpucontext.AdapterTypeSoftware
		}
	}
	for _, s := range integratedVendors {
		if strings.Contains(v, s) {
			return gpucontext.AdapterTypeIntegrated
		}
	}
	if strings.Contains(v, "nvidia") || strings.Contains(v, "radeon") || strings.Contains(v, "amd") {
		return gpucontext.AdapterTypeDiscrete
	}
	return gpucontext.AdapterTypeUnknown
}

// debugSupported reports whether debug output can be enabled: core 4.3 or
// the KHR_debug extension.
func debugSupported(major, minor int, extensions []string) bool {
	if major > 4 || (major == 4 && minor >= 3) {
		return true
	}
	return slices.Contains(extensions, "GL_KHR_debug")
}
