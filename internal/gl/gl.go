// SPDX-License-Identifier: Unlicense OR MIT

package gl

type (
	Attrib uint
	Enum   uint
)

const (
	ACTIVE_ATTRIBUTES                         = 0x8b89
	ACTIVE_TEXTURE                            = 0x84e0
	ACTIVE_UNIFORMS                           = 0x8b86
	ALPHA                                     = 0x1906
	ALWAYS                                    = 0x207
	ARRAY_BUFFER                              = 0x8892
	ARRAY_BUFFER_BINDING                      = 0x8894
	BACK                                      = 0x0405
	BGRA_EXT                                  = 0x80e1
	BLEND                                     = 0xbe2
	BOOL                                      = 0x8b56
	BOOL_VEC2                                 = 0x8b57
	BOOL_VEC3                                 = 0x8b58
	BOOL_VEC4                                 = 0x8b59
	BYTE                                      = 0x1400
	CCW                                       = 0x901
	CLAMP_TO_EDGE                             = 0x812f
	COLOR_ATTACHMENT0                         = 0x8ce0
	COLOR_BUFFER_BIT                          = 0x4000
	COLOR_WRITEMASK                           = 0xc23
	COMPILE_STATUS                            = 0x8b81
	CONSTANT_ALPHA                            = 0x8003
	CONSTANT_COLOR                            = 0x8001
	CULL_FACE                                 = 0xb44
	CURRENT_PROGRAM                           = 0x8b8d
	CW                                        = 0x900
	DECR                                      = 0x1e03
	DECR_WRAP                                 = 0x8508
	DEPTH24_STENCIL8                          = 0x88f0
	DEPTH32F_STENCIL8                         = 0x8cad
	DEPTH_ATTACHMENT                          = 0x8d00
	DEPTH_BUFFER_BIT                          = 0x100
	DEPTH_COMPONENT                           = 0x1902
	DEPTH_COMPONENT16                         = 0x81a5
	DEPTH_COMPONENT24                         = 0x81a6
	DEPTH_COMPONENT32                         = 0x81a7
	DEPTH_COMPONENT32F                        = 0x8cac
	DEPTH_FUNC                                = 0xb74
	DEPTH_STENCIL                             = 0x84f9
	DEPTH_STENCIL_ATTACHMENT                  = 0x821a
	DEPTH_TEST                                = 0xb71
	DEPTH_WRITEMASK                           = 0xb72
	DITHER                                    = 0xbd0
	DRAW_FRAMEBUFFER                          = 0x8ca9
	DST_ALPHA                                 = 0x304
	DST_COLOR                                 = 0x306
	DYNAMIC_DRAW                              = 0x88e8
	ELEMENT_ARRAY_BUFFER                      = 0x8893
	ELEMENT_ARRAY_BUFFER_BINDING              = 0x8895
	EQUAL                                     = 0x202
	EXTENSIONS                                = 0x1f03
	FALSE                                     = 0
	FLOAT                                     = 0x1406
	FLOAT_32_UNSIGNED_INT_24_8_REV            = 0x8dad
	FLOAT_MAT2                                = 0x8b5a
	FLOAT_MAT3                                = 0x8b5b
	FLOAT_MAT4                                = 0x8b5c
	FLOAT_VEC2                                = 0x8b50
	FLOAT_VEC3                                = 0x8b51
	FLOAT_VEC4                                = 0x8b52
	FRAGMENT_SHADER                           = 0x8b30
	FRAMEBUFFER                               = 0x8d40
	FRAMEBUFFER_BINDING                       = 0x8ca6
	FRAMEBUFFER_COMPLETE                      = 0x8cd5
	FRAMEBUFFER_INCOMPLETE_ATTACHMENT         = 0x8cd6
	FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT = 0x8cd7
	FRAMEBUFFER_SRGB                          = 0x8db9
	FRAMEBUFFER_UNSUPPORTED                   = 0x8cdd
	FRONT                                     = 0x0404
	FRONT_AND_BACK                            = 0x0408
	FUNC_ADD                                  = 0x8006
	FUNC_REVERSE_SUBTRACT                     = 0x800b
	FUNC_SUBTRACT                             = 0x800a
	GEQUAL                                    = 0x206
	GREATER                                   = 0x204
	HALF_FLOAT                                = 0x140b
	HALF_FLOAT_OES                            = 0x8d61
	INCR                                      = 0x1e02
	INCR_WRAP                                 = 0x8507
	INFO_LOG_LENGTH                           = 0x8b84
	INT                                       = 0x1404
	INT_VEC2                                  = 0x8b53
	INT_VEC3                                  = 0x8b54
	INT_VEC4                                  = 0x8b55
	INVALID_ENUM                              = 0x0500
	INVALID_FRAMEBUFFER_OPERATION             = 0x0506
	INVALID_INDEX                             = 0xffffffff
	INVALID_OPERATION                         = 0x0502
	INVALID_VALUE                             = 0x0501
	INVERT                                    = 0x150a
	KEEP                                      = 0x1e00
	LEQUAL                                    = 0x203
	LESS                                      = 0x201
	LINEAR                                    = 0x2601
	LINEAR_MIPMAP_LINEAR                      = 0x2703
	LINEAR_MIPMAP_NEAREST                     = 0x2701
	LINES                                     = 0x1
	LINE_STRIP                                = 0x3
	LINK_STATUS                               = 0x8b82
	LUMINANCE                                 = 0x1909
	LUMINANCE16                               = 0x8042
	LUMINANCE16F_ARB                          = 0x881e
	LUMINANCE16_ALPHA16                       = 0x8048
	LUMINANCE32F_ARB                          = 0x8818
	LUMINANCE8                                = 0x8040
	LUMINANCE8_ALPHA8                         = 0x8045
	LUMINANCE_ALPHA                           = 0x190a
	LUMINANCE_ALPHA16F_ARB                    = 0x881f
	LUMINANCE_ALPHA32F_ARB                    = 0x8819
	MAX_COMBINED_TEXTURE_IMAGE_UNITS          = 0x8b4d
	MAX_CUBE_MAP_TEXTURE_SIZE                 = 0x851c
	MAX_EXT                                   = 0x8008
	MAX_FRAGMENT_UNIFORM_VECTORS              = 0x8dfd
	MAX_RENDERBUFFER_SIZE                     = 0x84e8
	MAX_TEXTURE_IMAGE_UNITS                   = 0x8872
	MAX_TEXTURE_MAX_ANISOTROPY_EXT            = 0x84ff
	MAX_TEXTURE_SIZE                          = 0xd33
	MAX_VARYING_VECTORS                       = 0x8dfc
	MAX_VERTEX_ATTRIBS                        = 0x8869
	MAX_VERTEX_UNIFORM_VECTORS                = 0x8dfb
	MAX_VIEWPORT_DIMS                         = 0xd3a
	MIN_EXT                                   = 0x8007
	MIRRORED_REPEAT                           = 0x8370
	NEAREST                                   = 0x2600
	NEAREST_MIPMAP_LINEAR                     = 0x2702
	NEAREST_MIPMAP_NEAREST                    = 0x2700
	NEVER                                     = 0x200
	NOTEQUAL                                  = 0x205
	NO_ERROR                                  = 0x0
	ONE                                       = 0x1
	ONE_MINUS_CONSTANT_ALPHA                  = 0x8004
	ONE_MINUS_CONSTANT_COLOR                  = 0x8002
	ONE_MINUS_DST_ALPHA                       = 0x305
	ONE_MINUS_DST_COLOR                       = 0x307
	ONE_MINUS_SRC_ALPHA                       = 0x303
	ONE_MINUS_SRC_COLOR                       = 0x301
	OUT_OF_MEMORY                             = 0x0505
	PACK_ALIGNMENT                            = 0xd05
	POINTS                                    = 0x0
	POLYGON_OFFSET_FILL                       = 0x8037
	R11F_G11F_B10F                            = 0x8c3a
	READ_FRAMEBUFFER                          = 0x8ca8
	RED                                       = 0x1903
	RENDERBUFFER                              = 0x8d41
	RENDERBUFFER_BINDING                      = 0x8ca7
	RENDERER                                  = 0x1f01
	REPEAT                                    = 0x2901
	REPLACE                                   = 0x1e01
	RG                                        = 0x8227
	RGB                                       = 0x1907
	RGB10_A2                                  = 0x8059
	RGB565                                    = 0x8d62
	RGB5_A1                                   = 0x8057
	RGB9_E5                                   = 0x8c3d
	RGBA                                      = 0x1908
	RGBA16                                    = 0x805b
	RGBA16F                                   = 0x881a
	RGBA32F                                   = 0x8814
	RGBA4                                     = 0x8056
	RGBA8                                     = 0x8058
	SAMPLER_2D                                = 0x8b5e
	SAMPLER_2D_SHADOW                         = 0x8b62
	SAMPLER_3D                                = 0x8b5f
	SAMPLER_CUBE                              = 0x8b60
	SCISSOR_BOX                               = 0xc10
	SCISSOR_TEST                              = 0xc11
	SHADING_LANGUAGE_VERSION                  = 0x8b8c
	SHORT                                     = 0x1402
	SRC_ALPHA                                 = 0x302
	SRC_ALPHA_SATURATE                        = 0x308
	SRC_COLOR                                 = 0x300
	SRGB8_ALPHA8                              = 0x8c43
	SRGB_ALPHA_EXT                            = 0x8c42
	SRGB_EXT                                  = 0x8c40
	STATIC_DRAW                               = 0x88e4
	STENCIL_ATTACHMENT                        = 0x8d20
	STENCIL_BUFFER_BIT                        = 0x00000400
	STENCIL_INDEX                             = 0x1901
	STENCIL_INDEX8                            = 0x8d48
	STENCIL_TEST                              = 0xb90
	STREAM_DRAW                               = 0x88e0
	SUBPIXEL_BITS                             = 0xd50
	TEXTURE0                                  = 0x84c0
	TEXTURE_2D                                = 0xde1
	TEXTURE_BINDING_2D                        = 0x8069
	TEXTURE_CUBE_MAP                          = 0x8513
	TEXTURE_CUBE_MAP_POSITIVE_X               = 0x8515
	TEXTURE_MAG_FILTER                        = 0x2800
	TEXTURE_MAX_ANISOTROPY_EXT                = 0x84fe
	TEXTURE_MIN_FILTER                        = 0x2801
	TEXTURE_WRAP_S                            = 0x2802
	TEXTURE_WRAP_T                            = 0x2803
	TRIANGLES                                 = 0x4
	TRIANGLE_STRIP                            = 0x5
	TRUE                                      = 1
	UNPACK_ALIGNMENT                          = 0xcf5
	UNSIGNED_BYTE                             = 0x1401
	UNSIGNED_INT                              = 0x1405
	UNSIGNED_INT_10F_11F_11F_REV              = 0x8c3b
	UNSIGNED_INT_24_8                         = 0x84fa
	UNSIGNED_INT_2_10_10_10_REV               = 0x8368
	UNSIGNED_INT_5_9_9_9_REV                  = 0x8c3e
	UNSIGNED_INT_VEC2                         = 0x8dc6
	UNSIGNED_INT_VEC3                         = 0x8dc7
	UNSIGNED_INT_VEC4                         = 0x8dc8
	UNSIGNED_SHORT                            = 0x1403
	UNSIGNED_SHORT_4_4_4_4                    = 0x8033
	UNSIGNED_SHORT_5_5_5_1                    = 0x8034
	UNSIGNED_SHORT_5_6_5                      = 0x8363
	VENDOR                                    = 0x1f00
	VERSION                                   = 0x1f02
	VERTEX_SHADER                             = 0x8b31
	VIEWPORT                                  = 0xba2
	ZERO                                      = 0x0

	// EXT_texture_compression_s3tc
	COMPRESSED_RGBA_S3TC_DXT1_EXT = 0x83f1
	COMPRESSED_RGBA_S3TC_DXT3_EXT = 0x83f2
	COMPRESSED_RGBA_S3TC_DXT5_EXT = 0x83f3

	// EXT_texture_sRGB
	COMPRESSED_SRGB_ALPHA_S3TC_DXT1_EXT = 0x8c4d
	COMPRESSED_SRGB_ALPHA_S3TC_DXT3_EXT = 0x8c4e
	COMPRESSED_SRGB_ALPHA_S3TC_DXT5_EXT = 0x8c4f

	// ARB_texture_compression_rgtc
	COMPRESSED_RED_RGTC1        = 0x8dbb
	COMPRESSED_SIGNED_RED_RGTC1 = 0x8dbc
	COMPRESSED_RG_RGTC2         = 0x8dbd
	COMPRESSED_SIGNED_RG_RGTC2  = 0x8dbe

	// ARB_texture_compression_bptc
	COMPRESSED_RGBA_BPTC_UNORM         = 0x8e8c
	COMPRESSED_SRGB_ALPHA_BPTC_UNORM   = 0x8e8d
	COMPRESSED_RGB_BPTC_SIGNED_FLOAT   = 0x8e8e
	COMPRESSED_RGB_BPTC_UNSIGNED_FLOAT = 0x8e8f

	// ARB_ES3_compatibility
	COMPRESSED_R11_EAC                        = 0x9270
	COMPRESSED_SIGNED_R11_EAC                 = 0x9271
	COMPRESSED_RG11_EAC                       = 0x9272
	COMPRESSED_SIGNED_RG11_EAC                = 0x9273
	COMPRESSED_RGB8_ETC2                      = 0x9274
	COMPRESSED_SRGB8_ETC2                     = 0x9275
	COMPRESSED_RGB8_PUNCHTHROUGH_ALPHA1_ETC2  = 0x9276
	COMPRESSED_SRGB8_PUNCHTHROUGH_ALPHA1_ETC2 = 0x9277
	COMPRESSED_RGBA8_ETC2_EAC                 = 0x9278
	COMPRESSED_SRGB8_ALPHA8_ETC2_EAC          = 0x9279

	// KHR_texture_compression_astc_ldr. The sRGB variants
	// follow at a fixed distance.
	COMPRESSED_RGBA_ASTC_4x4_KHR         = 0x93b0
	COMPRESSED_SRGB8_ALPHA8_ASTC_4x4_KHR = 0x93d0
)
