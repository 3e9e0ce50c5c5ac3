package parser

var Clip = clip
