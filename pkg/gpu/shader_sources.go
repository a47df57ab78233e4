package gpu

import "desktopview/pkg/desktop"

// Shader sources for the desktop quad

// desktopVertexShader places the unit quad at position.xy scaled by
// position.zw and rotates the texture coordinates clockwise.
const desktopVertexShader = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aTexCoord;

uniform vec4 position;
uniform int  rotate;

out vec2 uv;

void main() {
    gl_Position = vec4(position.xy + aPos.xy * position.zw, 0.0, 1.0);

    vec2 t = aTexCoord;
    if (rotate == 1) {
        t = vec2(t.y, 1.0 - t.x);
    } else if (rotate == 2) {
        t = vec2(1.0 - t.x, 1.0 - t.y);
    } else if (rotate == 3) {
        t = vec2(1.0 - t.y, t.x);
    }
    uv = t;
}
`

// desktopFragmentShader samples the frame and applies the colorblind
// correction and night vision filters.
const desktopFragmentShader = `
#version 410 core
in vec2 uv;
out vec4 color;

uniform sampler2D sampler1;
uniform vec2  size;
uniform int   scaleAlgo;
uniform int   nv;
uniform float nvGain;
uniform int   cbMode;

// Daltonization: simulate the deficiency in LMS space and shift the
// lost information into the channels that are still perceived.
vec4 cbTransform(vec4 c, int mode) {
    float L = (17.8824    * c.r) + (43.5161  * c.g) + (4.11935 * c.b);
    float M = (3.45565    * c.r) + (27.1554  * c.g) + (3.86714 * c.b);
    float S = (0.0299611  * c.r) + (0.184309 * c.g) + (1.46709 * c.b);

    float l = L;
    float m = M;
    float s = S;
    if (mode == 1) {
        l = 2.02344 * M - 2.52581 * S;
    } else if (mode == 2) {
        m = 0.494207 * L + 1.24827 * S;
    } else if (mode == 3) {
        s = -0.395913 * L + 0.801109 * M;
    }

    vec4 sim;
    sim.r = (0.0809444479   * l) + (-0.130504409  * m) + (0.116721066  * s);
    sim.g = (-0.0102485335  * l) + (0.0540193266  * m) + (-0.113614708 * s);
    sim.b = (-0.000365296938 * l) + (-0.00412161469 * m) + (0.693511405 * s);
    sim.a = c.a;

    vec4 diff = c - sim;
    vec4 corrected = c;
    corrected.g += (diff.r * 0.7) + diff.g;
    corrected.b += (diff.r * 0.7) + diff.b;
    return corrected;
}

void main() {
    if (scaleAlgo == 0) {
        ivec2 texel = ivec2(min(uv * size, size - 1.0));
        color = texelFetch(sampler1, texel, 0);
    } else {
        color = texture(sampler1, uv);
    }

    if (cbMode > 0) {
        color = cbTransform(color, cbMode);
    }

    if (nv == 1) {
        float lumi = 1.0 - (0.2126 * color.r + 0.7152 * color.g + 0.0722 * color.b);
        color *= 1.0 + lumi;
        color *= nvGain;
    }

    color.a = 1.0;
}
`

// DesktopShaders returns the GLSL for every desktop shader variant.
func DesktopShaders() desktop.ShaderTable {
	return desktop.ShaderTable{
		desktop.VariantGeneric: {
			Vertex:   desktopVertexShader,
			Fragment: desktopFragmentShader,
		},
	}
}
