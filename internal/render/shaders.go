package render

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Voxel vertex shader: per-vertex mesh data plus per-instance transform.
// Rotation is Euler XYZ (R = Rx * Ry * Rz).
const voxelVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec3 aOffset;
layout(location = 3) in vec3 aScale;
layout(location = 4) in vec3 aRot;

uniform mat4 uView;
uniform mat4 uProj;

out vec3 vNormal;
out vec3 vWorld;
out float vDepth;

mat3 eulerXYZ(vec3 r) {
    float cx = cos(r.x), sx = sin(r.x);
    float cy = cos(r.y), sy = sin(r.y);
    float cz = cos(r.z), sz = sin(r.z);
    mat3 rx = mat3(1.0, 0.0, 0.0,  0.0, cx, sx,  0.0, -sx, cx);
    mat3 ry = mat3(cy, 0.0, -sy,  0.0, 1.0, 0.0,  sy, 0.0, cy);
    mat3 rz = mat3(cz, sz, 0.0,  -sz, cz, 0.0,  0.0, 0.0, 1.0);
    return rx * ry * rz;
}

void main() {
    mat3 rot = eulerXYZ(aRot);
    vec3 world = aOffset + rot * (aPos * aScale);
    vNormal = normalize(rot * (aNormal / aScale));
    vWorld = world;
    vec4 view = uView * vec4(world, 1.0);
    vDepth = -view.z;
    gl_Position = uProj * view;
}
` + "\x00"

// Voxel fragment shader: hemisphere + one directional light, emissive,
// linear fog. Unlit materials skip lighting but still take fog.
const voxelFragSrc = `#version 410 core

uniform vec3 uColor;
uniform float uOpacity;
uniform vec3 uEmissive;
uniform float uRoughness;
uniform float uMetalness;
uniform int uUnlit;

uniform vec3 uHemiSky;
uniform vec3 uHemiGround;
uniform vec3 uSunDir;
uniform vec3 uSunColor;
uniform vec3 uEye;

uniform vec3 uFogColor;
uniform float uFogNear;
uniform float uFogFar;

in vec3 vNormal;
in vec3 vWorld;
in float vDepth;
out vec4 FragColor;

void main() {
    vec3 col = uColor;
    if (uUnlit == 0) {
        vec3 n = normalize(vNormal);
        vec3 hemi = mix(uHemiGround, uHemiSky, n.y * 0.5 + 0.5);
        float ndl = max(dot(n, uSunDir), 0.0);
        vec3 diffuse = uColor * (1.0 - uMetalness) * (hemi + uSunColor * ndl);

        vec3 v = normalize(uEye - vWorld);
        vec3 h = normalize(uSunDir + v);
        float gloss = 1.0 - uRoughness;
        float shininess = mix(4.0, 96.0, gloss);
        vec3 f0 = mix(vec3(0.04), uColor, uMetalness);
        vec3 spec = f0 * uSunColor * pow(max(dot(n, h), 0.0), shininess) * gloss * ndl;

        col = diffuse + spec + uEmissive;
    }
    float fog = clamp((vDepth - uFogNear) / (uFogFar - uFogNear), 0.0, 1.0);
    FragColor = vec4(mix(col, uFogColor, fog), uOpacity);
}
` + "\x00"

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(buf))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %s", strings.TrimRight(buf, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vs, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(buf))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(buf, "\x00"))
	}
	return program, nil
}
