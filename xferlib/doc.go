// Package xferlib supplies a catalog of named, reusable Xfers: the fixed
// substitution set a search registers before its main loop, covering
// operator fusion (conv+batchnorm, conv+relu, matmul+activation) and the
// kernel-enlargement and split/concat-elision rewrites.
package xferlib
