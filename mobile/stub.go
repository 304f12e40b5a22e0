//go:build !mobile

// 桌面端构建时 mobile 包只剩这个占位函数，
// 真正的绑定入口在 mobile.go（-tags mobile）。
package mobile

// Dummy 保证包在非移动端构建时也能被引用
func Dummy() {}
