package graph

import "xgraph/gl"

const (
	attrColor    = "aVertexColor"
	attrPosition = "aVertexPosition"
)

const vertexShaderSource = `precision mediump float;

attribute vec4 aVertexColor;
attribute vec2 aVertexPosition;

varying lowp vec4 vColor;

void main () {
  gl_Position = vec4(aVertexPosition, 0.0, 1.0);
  vColor = aVertexColor;
}
`

// Pass-through fragment programs, one per shading language.
var fragmentShaderSources = map[gl.Language]string{
	gl.LanguageGLSL: `precision mediump float;

varying lowp vec4 vColor;

void main () {
  gl_FragColor = vColor;
}
`,
	gl.LanguageKage: `//kage:unit pixels

package main

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	return color
}
`,
}
