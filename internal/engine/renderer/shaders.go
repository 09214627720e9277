package renderer

// Phong shading with up to lighting.MaxLights point lights. Light colors
// arrive already scaled by intensity.
const meshVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;
uniform mat3 uNormalMatrix;

out vec3 vWorldPos;
out vec3 vNormal;
out vec2 vTexCoord;

void main() {
	vec4 world = uModel * vec4(aPosition, 1.0);
	vWorldPos = world.xyz;
	vNormal = uNormalMatrix * aNormal;
	vTexCoord = aTexCoord;
	gl_Position = uProjection * uView * world;
}
`

const meshFragmentShader = `
#version 410 core

#define MAX_LIGHTS 8

in vec3 vWorldPos;
in vec3 vNormal;
in vec2 vTexCoord;

uniform vec3 uLightPos[MAX_LIGHTS];
uniform vec3 uLightAmbient[MAX_LIGHTS];
uniform vec3 uLightDiffuse[MAX_LIGHTS];
uniform vec3 uLightSpecular[MAX_LIGHTS];
uniform int uLightEnabled[MAX_LIGHTS];
uniform int uLightCount;

uniform vec3 uKa;
uniform vec3 uKd;
uniform vec3 uKs;
uniform float uNs;
uniform bool uHasTexture;
uniform sampler2D uTexture;

uniform vec3 uViewPos;
uniform bool uHighlight;
uniform vec3 uHighlightColor;

out vec4 FragColor;

void main() {
	vec3 base = uKd;
	if (uHasTexture) {
		base *= texture(uTexture, vTexCoord).rgb;
	}
	if (uHighlight) {
		base = uHighlightColor;
	}

	vec3 n = normalize(vNormal);
	vec3 viewDir = normalize(uViewPos - vWorldPos);
	vec3 color = vec3(0.0);

	for (int i = 0; i < uLightCount; ++i) {
		if (uLightEnabled[i] == 0) {
			continue;
		}
		vec3 l = normalize(uLightPos[i] - vWorldPos);
		vec3 h = reflect(-l, n);
		float diff = max(dot(n, l), 0.0);
		float spec = pow(max(dot(viewDir, h), 0.0), max(uNs, 1.0));

		color += uLightAmbient[i] * uKa * base;
		color += uLightDiffuse[i] * diff * base;
		color += uLightSpecular[i] * spec * uKs;
	}

	FragColor = vec4(color, 1.0);
}
`

const lineVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;

uniform mat4 uView;
uniform mat4 uProjection;

void main() {
	gl_Position = uProjection * uView * vec4(aPosition, 1.0);
}
`

const lineFragmentShader = `
#version 410 core

uniform vec3 uColor;

out vec4 FragColor;

void main() {
	FragColor = vec4(uColor, 1.0);
}
`
